// Package assert reports programmer-contract violations.
//
// Violations are always logged. When debug assertions are enabled
// (SCROLLBOX_DEBUG set, or SetDebug(true)) That panics; otherwise the caller
// is expected to clamp and continue. Fatal panics unconditionally.
package assert

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/andyrewlee/scrollbox/internal/logging"
)

// Violation is the panic value raised by failed assertions.
type Violation struct {
	Msg   string
	fatal bool
}

func (v *Violation) Error() string { return v.Msg }

// Fatal reports whether the violation must never be recovered.
func (v *Violation) Fatal() bool { return v.fatal }

var debug atomic.Bool

func init() {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("SCROLLBOX_DEBUG")))
	switch raw {
	case "", "0", "false", "no":
	default:
		debug.Store(true)
	}
}

// SetDebug toggles panicking assertions and returns the previous setting.
func SetDebug(on bool) bool {
	return debug.Swap(on)
}

// Debug reports whether debug assertions are enabled.
func Debug() bool {
	return debug.Load()
}

// That reports cond. A false cond is logged, and panics in debug mode.
func That(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	logging.Error("assertion failed: %s", msg)
	if debug.Load() {
		panic(&Violation{Msg: msg})
	}
	return false
}

// Fatal logs and panics regardless of mode.
func Fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logging.Error("fatal assertion: %s", msg)
	panic(&Violation{Msg: msg, fatal: true})
}
