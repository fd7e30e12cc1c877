// Package watch reruns the whole pipeline when content files change. The
// corpus lifecycle is wholesale rebuild, so the watcher never tries to patch
// the index incrementally; it only decides when a full run is due.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of file events (editor saves, git
// checkouts) into a single rebuild.
const DefaultDebounce = 200 * time.Millisecond

// Watch starts an fsnotify watcher on the content root and calls rebuild
// after each debounced batch of markdown changes, until ctx is cancelled.
// New directories created at runtime are added to the watch list.
func Watch(ctx context.Context, root string, debounce time.Duration, logger *slog.Logger, rebuild func(context.Context)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, root); err != nil {
		return err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger.Info("watch: started", slog.String("root", root))

	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watch: stopped")
			return nil

		case <-fire:
			rebuild(ctx)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			// New directories join the watch list and count as a change:
			// they may already contain markdown files.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watch: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					schedule()
					continue
				}
			}

			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watch: change", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
