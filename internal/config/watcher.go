package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/webassets/internal/logfields"
)

// Watcher calls a function whenever the settings file changes. Bursts of
// events (editors often write, chmod and rename in quick succession) are
// collapsed into a single call after the debounce delay.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
}

// NewWatcher creates a watcher for the settings file at path.
func NewWatcher(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	// Watch the directory: editors replace files, which drops a direct file watch.
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}
	return &Watcher{path: absPath, watcher: w, debounce: debounce, onChange: onChange}, nil
}

// Run blocks until ctx is done, dispatching debounced change notifications.
// The underlying watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Remove) {
				slog.Warn("Settings file removed", logfields.Path(event.Name))
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("Settings change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Settings watcher error", logfields.Error(err))
		}
	}
}
