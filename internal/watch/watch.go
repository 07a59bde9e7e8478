// Package watch reports changes below a set of source directories in
// debounced batches.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the sorted, deduplicated paths that changed during
// one debounce window.
type Handler func(ctx context.Context, changed []string) error

// Watcher watches directory trees for changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

// New watches every directory below each of paths. A nil logger discards
// output.
func New(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{fsw: fsw, debounce: debounce, logger: logger}
	for _, path := range paths {
		if err := w.addRecursive(path); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// addRecursive adds root and all its subdirectories.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// ignored reports hidden files and directories, such as editor swap files
// and staging directories.
func ignored(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// Run delivers change batches to fn until ctx is done, fn fails or the
// underlying watcher reports an error. It returns nil when ctx is done.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// New subdirectories are not covered by the existing watches.
				if err := w.addRecursive(ev.Name); err != nil {
					w.logger.Debug("could not watch new path", "path", ev.Name, "error", err)
				}
			}

			w.logger.Debug("source changed", "path", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			slices.Sort(changed)
			clear(pending)

			if err := fn(ctx, changed); err != nil {
				return err
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
