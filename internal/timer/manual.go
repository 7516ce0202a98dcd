package timer

import (
	"sort"
	"time"
)

// ManualScheduler fires timers against a virtual clock advanced by the caller.
// It backs tests and headless hosts.
type ManualScheduler struct {
	reg registry
	now time.Time
}

// NewManual returns a scheduler whose clock starts at the zero time.
func NewManual() *ManualScheduler {
	return &ManualScheduler{reg: newRegistry()}
}

func (s *ManualScheduler) NewToken() *Token { return s.reg.newToken() }

func (s *ManualScheduler) Schedule(tok *Token, fn func(), interval time.Duration, repeat int) Handle {
	e, ok := s.reg.arm(tok, fn, interval, repeat)
	if !ok {
		return Handle{Token: tok}
	}
	e.due = s.now.Add(e.interval)
	return Handle{Token: tok, Gen: e.gen}
}

func (s *ManualScheduler) Cancel(tok *Token) { s.reg.cancel(tok) }

func (s *ManualScheduler) Close(tok *Token) { s.reg.close(tok) }

func (s *ManualScheduler) Active(tok *Token) bool { return s.reg.active(tok) }

// Now returns the virtual clock.
func (s *ManualScheduler) Now() time.Time { return s.now }

// Pending returns the number of outstanding timers.
func (s *ManualScheduler) Pending() int { return len(s.reg.entries) }

// Advance moves the clock forward by d, firing every timer that comes due in
// deadline order. Timers scheduled by callbacks fire too if they fall inside
// the window. It returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now.Add(d)
	fired := 0
	for {
		e := s.nextDue(target, true)
		if e == nil {
			break
		}
		if e.due.After(s.now) {
			s.now = e.due
		}
		if again, ok := s.reg.fire(e.tok.id, e.gen); ok {
			again.due = s.now.Add(again.interval)
		}
		fired++
	}
	s.now = target
	return fired
}

// Step advances the clock to the next deadline and fires it.
func (s *ManualScheduler) Step() bool {
	e := s.nextDue(time.Time{}, false)
	if e == nil {
		return false
	}
	return s.Advance(e.due.Sub(s.now)) > 0
}

func (s *ManualScheduler) nextDue(limit time.Time, bounded bool) *entry {
	if len(s.reg.entries) == 0 {
		return nil
	}
	list := make([]*entry, 0, len(s.reg.entries))
	for _, e := range s.reg.entries {
		if bounded && e.due.After(limit) {
			continue
		}
		list = append(list, e)
	}
	if len(list) == 0 {
		return nil
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].due.Equal(list[j].due) {
			return list[i].tok.id < list[j].tok.id
		}
		return list[i].due.Before(list[j].due)
	})
	return list[0]
}
