package common

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/scrollbox/internal/logging"
	"github.com/andyrewlee/scrollbox/internal/messages"
)

type fatal interface {
	Fatal() bool
}

// recoverInto turns a panic in a command into a messages.Error stored in
// *msg. Fatal assertion failures keep unwinding.
func recoverInto(kind string, msg *tea.Msg) {
	r := recover()
	if r == nil {
		return
	}
	logging.Error("panic in %s: %v\n%s", kind, r, debug.Stack())
	if f, ok := r.(fatal); ok && f.Fatal() {
		panic(r)
	}
	*msg = messages.Error{Err: fmt.Errorf("%s panic: %v", kind, r), Context: kind, Logged: true}
}

// SafeCmd wraps cmd with panic recovery.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		defer recoverInto("command", &msg)
		return cmd()
	}
}

// SafeBatch drops nil commands and batches the rest behind SafeCmd. A single
// survivor is returned unbatched.
func SafeBatch(cmds ...tea.Cmd) tea.Cmd {
	var safe []tea.Cmd
	for _, cmd := range cmds {
		if cmd != nil {
			safe = append(safe, SafeCmd(cmd))
		}
	}
	switch len(safe) {
	case 0:
		return nil
	case 1:
		return safe[0]
	}
	return tea.Batch(safe...)
}

// SafeTick is tea.Tick with panic recovery around fn. Timer services and
// toasts schedule through it.
func SafeTick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	if fn == nil {
		return nil
	}
	return tea.Tick(d, func(t time.Time) (msg tea.Msg) {
		defer recoverInto("tick", &msg)
		return fn(t)
	})
}
