package pages

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a reload is triggered.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads an override directory into a Builder when its files change.
type Watcher struct {
	dir      string
	builder  *Builder
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	debounce *Debouncer
}

// NewWatcher creates a watcher for dir feeding b.
func NewWatcher(dir string, b *Builder, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	return &Watcher{
		dir:      dir,
		builder:  b,
		logger:   logger,
		watcher:  fw,
		debounce: NewDebouncer(DefaultDebounce),
	}, nil
}

// Run watches until ctx is cancelled. Reload failures are logged and the
// previous page set stays in place.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		w.debounce.Stop()
		_ = w.watcher.Close()
	}()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.dir, err)
	}
	w.logger.Info("watching pages", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !isPageEvent(event) {
				continue
			}
			w.debounce.Trigger(w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("pages watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	set, err := LoadSet(w.dir)
	if err != nil {
		w.logger.Error("pages reload failed", "dir", w.dir, "error", err)
		return
	}
	w.builder.Swap(set)
	w.logger.Info("pages reloaded", "dir", w.dir)
}

func isPageEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	switch filepath.Base(event.Name) {
	case RootFile, GalleryFile, NotFoundFile, FaviconFile, PhotoFile:
		return true
	}
	return false
}

// Debouncer collects rapid triggers and runs only the last callback after
// a quiet period.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopped  bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback, replacing any pending one.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		cb := d.callback
		stopped := d.stopped
		d.callback = nil
		d.mu.Unlock()

		if cb != nil && !stopped {
			cb()
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
	d.callback = nil
}
