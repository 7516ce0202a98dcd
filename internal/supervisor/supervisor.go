// Package supervisor keeps background workers (the config watcher) alive
// across failures.
package supervisor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/andyrewlee/scrollbox/internal/logging"
)

// RestartPolicy controls when a worker is restarted after it returns.
type RestartPolicy int

const (
	RestartNever RestartPolicy = iota
	RestartOnError
	RestartAlways
)

type options struct {
	policy      RestartPolicy
	maxRestarts int
	backoff     time.Duration
	maxBackoff  time.Duration
	onError     func(name string, err error)
}

// Option configures a supervised worker.
type Option func(*options)

// WithRestartPolicy sets the restart policy. The default is RestartOnError.
func WithRestartPolicy(policy RestartPolicy) Option {
	return func(o *options) { o.policy = policy }
}

// WithMaxRestarts limits restarts; 0 means unlimited.
func WithMaxRestarts(max int) Option {
	return func(o *options) { o.maxRestarts = max }
}

// WithBackoff sets the first delay between restarts. It doubles up to the
// max backoff.
func WithBackoff(initial, max time.Duration) Option {
	return func(o *options) {
		o.backoff = initial
		o.maxBackoff = max
	}
}

// Supervisor runs workers until its context is canceled.
type Supervisor struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	onError func(name string, err error)
}

// New creates a supervisor bound to parent.
func New(parent context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(parent)
	return &Supervisor{ctx: ctx, cancel: cancel}
}

// Context is canceled when the supervisor stops.
func (s *Supervisor) Context() context.Context {
	return s.ctx
}

// SetErrorHandler registers the default handler for worker errors.
func (s *Supervisor) SetErrorHandler(handler func(name string, err error)) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.onError = handler
	s.mu.Unlock()
}

// Stop cancels all workers and waits for them to return.
func (s *Supervisor) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// Start runs fn in its own goroutine. Panics are converted to errors.
func (s *Supervisor) Start(name string, fn func(context.Context) error, opts ...Option) {
	if s == nil || fn == nil {
		return
	}
	cfg := options{
		policy:     RestartOnError,
		backoff:    200 * time.Millisecond,
		maxBackoff: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	s.mu.Lock()
	cfg.onError = s.onError
	s.mu.Unlock()
	if cfg.maxBackoff < cfg.backoff {
		cfg.maxBackoff = cfg.backoff
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop(name, fn, cfg)
	}()
}

func (s *Supervisor) loop(name string, fn func(context.Context) error, cfg options) {
	backoff := cfg.backoff
	for restarts := 0; ; restarts++ {
		err := runSafe(s.ctx, name, fn)
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			logging.Warn("supervisor: %s failed: %v", name, err)
			if cfg.onError != nil {
				cfg.onError(name, err)
			}
		}
		if !shouldRestart(err, cfg.policy) {
			return
		}
		if cfg.maxRestarts > 0 && restarts >= cfg.maxRestarts {
			logging.Error("supervisor: %s exceeded max restarts (%d)", name, cfg.maxRestarts)
			return
		}
		if !s.sleep(backoff) {
			return
		}
		backoff *= 2
		if backoff > cfg.maxBackoff {
			backoff = cfg.maxBackoff
		}
	}
}

// sleep waits d or until the supervisor stops. It reports whether the
// worker should run again.
func (s *Supervisor) sleep(d time.Duration) bool {
	if d <= 0 {
		return s.ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func shouldRestart(err error, policy RestartPolicy) bool {
	switch policy {
	case RestartAlways:
		return true
	case RestartOnError:
		return err != nil
	default:
		return false
	}
}

func runSafe(ctx context.Context, name string, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", name, r)
			logging.Error("%v\n%s", err, debug.Stack())
		}
	}()
	return fn(ctx)
}
