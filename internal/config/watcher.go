package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/scrollbox/internal/logging"
)

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	mu sync.Mutex

	watcher    *fsnotify.Watcher
	paths      *Paths
	onChanged  func(*Config)
	closeOnce  sync.Once
	debounce   time.Duration
	lastChange time.Time
}

// NewWatcher watches the directory holding paths.ConfigPath. Editors often
// replace the file by rename, which drops a watch on the file itself.
func NewWatcher(paths *Paths, onChanged func(*Config)) (*Watcher, error) {
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(paths.ConfigPath)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:   fw,
		paths:     paths,
		onChanged: onChanged,
		debounce:  200 * time.Millisecond,
	}, nil
}

// SetDebounce overrides the minimum spacing between reloads.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

// Run processes file system events until the context is canceled or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	target := filepath.Clean(w.paths.ConfigPath)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			w.mu.Lock()
			if time.Since(w.lastChange) < w.debounce {
				w.mu.Unlock()
				continue
			}
			w.lastChange = time.Now()
			w.mu.Unlock()

			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("config watcher: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFrom(w.paths)
	if err != nil {
		// Half-written files fail to parse; the next write event retries.
		logging.Warn("config reload failed: %v", err)
		return
	}
	logging.Info("config reloaded from %s", w.paths.ConfigPath)
	if w.onChanged != nil {
		w.onChanged(cfg)
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
