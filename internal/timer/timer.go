// Package timer provides the cancellable timer service used by the scroll
// animator and the frame-selection auto-scroll loop.
//
// Every owner holds a Token. Scheduling through a token replaces whatever it
// had outstanding; cancelling or closing bumps the token's generation so that
// ticks already in flight arrive stale and are dropped. Callbacks always run
// on the goroutine that delivers ticks (the UI loop), never concurrently.
package timer

import (
	"time"

	"github.com/andyrewlee/scrollbox/internal/safego"
)

// RepeatForever schedules a callback until it is cancelled.
const RepeatForever = -1

// Token identifies one owner's timer slot.
type Token struct {
	id     uint64
	gen    uint64
	closed bool
}

// Closed reports whether the owner released the token.
func (t *Token) Closed() bool { return t == nil || t.closed }

// Handle names one scheduled timer.
type Handle struct {
	Token *Token
	Gen   uint64
}

// Scheduler is the timer service contract.
type Scheduler interface {
	NewToken() *Token
	// Schedule arms fn to run after interval, repeat times (RepeatForever for
	// no limit). Any timer already outstanding on tok is cancelled first.
	Schedule(tok *Token, fn func(), interval time.Duration, repeat int) Handle
	// Cancel drops tok's outstanding timer. In-flight ticks become inert.
	Cancel(tok *Token)
	// Close cancels and permanently disables tok.
	Close(tok *Token)
	// Active reports whether tok has a timer outstanding.
	Active(tok *Token) bool
}

type entry struct {
	tok       *Token
	gen       uint64
	fn        func()
	interval  time.Duration
	remaining int
	due       time.Time
}

// registry is the bookkeeping shared by every Scheduler implementation.
type registry struct {
	nextID  uint64
	entries map[uint64]*entry
}

func newRegistry() registry {
	return registry{entries: make(map[uint64]*entry)}
}

func (r *registry) newToken() *Token {
	r.nextID++
	return &Token{id: r.nextID}
}

func (r *registry) arm(tok *Token, fn func(), interval time.Duration, repeat int) (*entry, bool) {
	if tok == nil || tok.closed || fn == nil || repeat == 0 {
		r.cancel(tok)
		return nil, false
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	tok.gen++
	e := &entry{tok: tok, gen: tok.gen, fn: fn, interval: interval, remaining: repeat}
	r.entries[tok.id] = e
	return e, true
}

func (r *registry) cancel(tok *Token) {
	if tok == nil {
		return
	}
	tok.gen++
	delete(r.entries, tok.id)
}

func (r *registry) close(tok *Token) {
	if tok == nil {
		return
	}
	r.cancel(tok)
	tok.closed = true
}

func (r *registry) active(tok *Token) bool {
	if tok == nil || tok.closed {
		return false
	}
	e, ok := r.entries[tok.id]
	return ok && e.gen == tok.gen
}

// fire runs the callback for (id, gen) if it is still current. It returns the
// entry to re-arm when the timer repeats and survived its own callback.
func (r *registry) fire(id, gen uint64) (*entry, bool) {
	e, ok := r.entries[id]
	if !ok || e.gen != gen || e.tok.closed || e.tok.gen != gen {
		return nil, false
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining == 0 {
		delete(r.entries, id)
	}
	safego.Run("timer", e.fn)

	if e.remaining == 0 {
		return nil, false
	}
	if cur, ok := r.entries[id]; !ok || cur != e || e.tok.gen != gen {
		return nil, false
	}
	return e, true
}
