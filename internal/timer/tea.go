package timer

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/scrollbox/internal/ui/common"
)

// Fired is delivered to the bubbletea program when a scheduled tick elapses.
// Route it back through TeaScheduler.Handle.
type Fired struct {
	Token uint64
	Gen   uint64
}

// TeaScheduler schedules timers as tea.Tick commands. Schedule only queues
// the command; the owning model returns Cmd() from Update so the runtime
// starts the tick. Callbacks run inside Update when Fired comes back.
type TeaScheduler struct {
	reg     registry
	pending []tea.Cmd
}

// NewTea returns an empty scheduler.
func NewTea() *TeaScheduler {
	return &TeaScheduler{reg: newRegistry()}
}

func (s *TeaScheduler) NewToken() *Token { return s.reg.newToken() }

func (s *TeaScheduler) Schedule(tok *Token, fn func(), interval time.Duration, repeat int) Handle {
	e, ok := s.reg.arm(tok, fn, interval, repeat)
	if !ok {
		return Handle{Token: tok}
	}
	s.pending = append(s.pending, tickCmd(e))
	return Handle{Token: tok, Gen: e.gen}
}

func (s *TeaScheduler) Cancel(tok *Token) { s.reg.cancel(tok) }

func (s *TeaScheduler) Close(tok *Token) { s.reg.close(tok) }

func (s *TeaScheduler) Active(tok *Token) bool { return s.reg.active(tok) }

// Handle runs the callback for a Fired message. Stale or foreign messages
// are ignored. It reports whether msg was a Fired message.
func (s *TeaScheduler) Handle(msg tea.Msg) bool {
	f, ok := msg.(Fired)
	if !ok {
		return false
	}
	if again, rearm := s.reg.fire(f.Token, f.Gen); rearm {
		s.pending = append(s.pending, tickCmd(again))
	}
	return true
}

// Cmd drains the ticks queued since the last call.
func (s *TeaScheduler) Cmd() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return common.SafeBatch(cmds...)
}

func tickCmd(e *entry) tea.Cmd {
	id, gen := e.tok.id, e.gen
	return common.SafeTick(e.interval, func(time.Time) tea.Msg {
		return Fired{Token: id, Gen: gen}
	})
}
