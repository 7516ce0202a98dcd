// Package safego runs background work (config watching, pprof, signal
// dumps) so that a panic is logged instead of killing the terminal.
package safego

import (
	"runtime/debug"
	"sync/atomic"

	"github.com/andyrewlee/scrollbox/internal/logging"
)

// PanicHandler receives recovered panics, for example to surface them in
// the UI.
type PanicHandler func(name string, recovered any, stack []byte)

// fatal is implemented by panic values that must never be swallowed, such
// as failed layout convergence assertions.
type fatal interface {
	Fatal() bool
}

var handler atomic.Pointer[PanicHandler]

// SetPanicHandler registers the process-wide handler. nil removes it.
func SetPanicHandler(h PanicHandler) {
	if h == nil {
		handler.Store(nil)
		return
	}
	handler.Store(&h)
}

// Run calls fn and recovers a panic from it. Fatal values are re-raised
// after logging. Runtime-fatal errors (concurrent map writes) cannot be
// recovered.
func Run(name string, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if name == "" {
			name = "goroutine"
		}
		stack := debug.Stack()
		logging.Error("panic in %s: %v\n%s", name, r, stack)
		notify(name, r, stack)
		if f, ok := r.(fatal); ok && f.Fatal() {
			panic(r)
		}
	}()
	fn()
}

func notify(name string, r any, stack []byte) {
	h := handler.Load()
	if h == nil {
		return
	}
	defer func() {
		if hr := recover(); hr != nil {
			logging.Error("panic handler for %s panicked: %v", name, hr)
		}
	}()
	(*h)(name, r, stack)
}

// Go runs fn on a new goroutine under Run.
func Go(name string, fn func()) {
	go Run(name, fn)
}
