package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/outparse/convert"
)

// DefaultPollInterval is the polling period when file events are unavailable.
const DefaultPollInterval = time.Second

// Watcher keeps a compiled Set current with its file. A failed reload keeps
// the previous Set.
type Watcher struct {
	path     string
	reg      *convert.Registry
	current  atomic.Pointer[Set]
	interval time.Duration
	polling  bool
	onReload func(*Set, error)
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithPollInterval sets the polling period used without file events.
func WithPollInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithPolling disables file events and always polls, for filesystems that
// do not deliver them.
func WithPolling() WatcherOption {
	return func(w *Watcher) { w.polling = true }
}

// WithOnReload registers a callback run after every reload attempt with
// the new Set, or nil and the error.
func WithOnReload(fn func(*Set, error)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher loads the catalog at path. The initial load must succeed.
func NewWatcher(path string, reg *convert.Registry, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		reg:      reg,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(w)
	}

	s, err := LoadSet(path, reg)
	if err != nil {
		return nil, err
	}
	w.current.Store(s)
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Set returns the current compiled catalog.
func (w *Watcher) Set() *Set {
	return w.current.Load()
}

// Reload loads and compiles the file now. On error the current Set is kept.
func (w *Watcher) Reload() error {
	s, err := LoadSet(w.path, w.reg)
	if err != nil {
		slog.Warn("catalog reload failed, keeping previous templates",
			slog.String("path", w.path),
			slog.Any("error", err))
	} else {
		w.current.Store(s)
		slog.Info("catalog reloaded",
			slog.String("path", w.path),
			slog.Int("templates", s.Len()))
	}

	if w.onReload != nil {
		w.onReload(s, err)
	}
	return err
}

// Run watches the file until ctx is cancelled. It uses fsnotify on the
// parent directory, which survives editors that replace the file, and
// falls back to polling when that is unavailable.
func (w *Watcher) Run(ctx context.Context) error {
	if w.polling {
		return w.runPolling(ctx)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Debug("file events unavailable, polling", slog.Any("error", err))
		return w.runPolling(ctx)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		slog.Debug("cannot watch catalog directory, polling",
			slog.String("path", w.path),
			slog.Any("error", err))
		return w.runPolling(ctx)
	}

	return w.runEvents(ctx, watcher)
}

func (w *Watcher) runEvents(ctx context.Context, watcher *fsnotify.Watcher) error {
	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("catalog changed",
				slog.String("path", w.path),
				slog.String("op", event.Op.String()))
			_ = w.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Debug("catalog watch error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) runPolling(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last, _ := os.Stat(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			info, err := os.Stat(w.path)
			if err != nil {
				continue
			}
			if last != nil && info.ModTime().Equal(last.ModTime()) && info.Size() == last.Size() {
				continue
			}
			last = info
			_ = w.Reload()
		}
	}
}
