// Package watcher blocks until a filesystem change is observed under the
// source directory. It wraps fsnotify with recursive directory registration
// and a short debounce so a burst of editor writes counts as one change.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/texbuild/internal/logfields"
)

// Watcher waits for changes under a directory tree.
type Watcher struct {
	dir      string
	debounce time.Duration
}

// New returns a Watcher over dir. debounce controls how long event bursts
// are coalesced before WaitForChange returns; zero disables coalescing.
func New(dir string, debounce time.Duration) *Watcher {
	return &Watcher{dir: dir, debounce: debounce}
}

// WaitForChange blocks until a create, write, remove, rename or chmod event
// is observed anywhere under the watched tree, then returns nil. It returns
// ctx.Err() when the context is canceled first.
//
// The watch is established fresh on each call; changes between calls are
// not observed. That matches the rebuild loop, which only needs "something
// changed since the last build".
func (w *Watcher) WaitForChange(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := addRecursive(fsw, w.dir); err != nil {
		return err
	}

	var timer *time.Timer
	var fired <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher event channel closed")
			}
			slog.Debug("Source change detected", logfields.Path(event.Name), "op", event.Op.String())

			// New subdirectories must be watched too.
			if event.Op.Has(fsnotify.Create) {
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					if err := addRecursive(fsw, event.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}

			if w.debounce <= 0 {
				return nil
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fired = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fired:
			return nil

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// addRecursive registers root and every directory below it.
func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
