package config

import (
	"context"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	paths := PathsIn(t.TempDir())
	reloaded := make(chan *Config, 4)

	w, err := NewWatcher(paths, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer func() {
		_ = w.Close()
	}()
	w.SetDebounce(0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writeConfig(t, paths, `{"scroll":{"hold_end":true}}`)

	select {
	case cfg := <-reloaded:
		if !cfg.Scroll.HoldEnd {
			t.Fatalf("expected reloaded config to carry the override, got %+v", cfg.Scroll)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	paths := PathsIn(t.TempDir())
	w, err := NewWatcher(paths, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	// A closed watcher drains to nil.
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run() on closed watcher = %v", err)
	}
}
