package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval is how long the watcher waits for writes to settle.
const DefaultDebounceInterval = 250 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk.
//
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temporary file over the original are still seen.
// Bursts of events are collapsed with a Debouncer.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce *Debouncer

	mu      sync.Mutex
	running bool
}

// NewWatcher creates a watcher for the configuration file at path.
// A zero interval uses DefaultDebounceInterval.
func NewWatcher(path string, interval time.Duration, logger *slog.Logger) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		logger:   logger.With("component", "config.watcher"),
		debounce: NewDebouncer(interval),
	}, nil
}

// Watch blocks until ctx is done, calling onChange with each successfully
// reloaded configuration. Files that fail to load or validate are logged and
// skipped; the previous configuration stays in effect.
func (w *Watcher) Watch(ctx context.Context, onChange func(*Config)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.watcher.Close()
	}()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(w.path), err)
	}

	w.logger.Info("config watcher started", "path", w.path)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("config watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("config file event", "op", event.Op.String())
			w.debounce.Trigger(func() {
				cfg, err := Load(w.path)
				if err != nil {
					w.logger.Error("config reload failed", "error", err)
					return
				}
				w.logger.Info("config reloaded", "path", w.path)
				onChange(cfg)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	if event.Op&fsnotify.Remove == fsnotify.Remove {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.path
}

// Debouncer collects rapid events and runs only the last callback after a
// quiet period.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	stopped  bool
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback after the debounce interval, replacing any
// callback that has not fired yet.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			callback()
		}
	})
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
