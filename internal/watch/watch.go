// Package watch rebuilds the site when files under the content root change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"develog/internal/logging"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc performs a full rebuild.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers a rebuild after a burst of filesystem changes.
type Watcher struct {
	root     string
	rebuild  RebuildFunc
	debounce time.Duration
	logger   logging.Logger
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func New(root string, rebuild RebuildFunc, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches root and every directory below it until ctx is done.
// Directories created while running are added. Rebuilds never overlap;
// a failed rebuild is logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.addTree(watcher, w.root); err != nil {
		return err
	}
	w.logger.Info("watching for changes", logging.FieldPath, w.root)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.addTree(watcher, event.Name); err != nil {
					w.logger.Warn("could not watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
				}
			}
			w.logger.Debug("change detected", logging.FieldPath, event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("rebuild failed", logging.FieldError, err)
				continue
			}
			w.logger.Info("rebuilt", logging.FieldDuration, time.Since(start).Milliseconds())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logging.FieldError, err)
		}
	}
}

func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
