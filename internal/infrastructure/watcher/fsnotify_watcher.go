// Package watcher provides an fsnotify-backed ports.FileWatcher.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// FSWatcher watches named files inside one directory.
type FSWatcher struct {
	logger   *slog.Logger
	debounce time.Duration
}

// New creates a new FSWatcher. A zero debounce selects DefaultDebounce.
func New(logger *slog.Logger, debounce time.Duration) *FSWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FSWatcher{logger: logger, debounce: debounce}
}

// Watch blocks until ctx is done, calling onChange from the calling goroutine
// after a watched file is written, created, renamed or removed. Events for
// the same file within the debounce window are coalesced.
func (w *FSWatcher) Watch(ctx context.Context, dir string, names []string, onChange func(path string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		_ = fw.Close() // Best-effort cleanup
	}()

	// fsnotify watches dirs for file events
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	watched := make(map[string]bool, len(names))
	for _, name := range names {
		watched[name] = true
	}

	w.logger.Debug("watching block folder", "dir", dir, "files", names)

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !watched[filepath.Base(event.Name)] {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			for path := range pending {
				onChange(path)
			}
			clear(pending)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "dir", dir, "error", err)
		}
	}
}
