package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce absorbs the burst of events a single editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher calls back when a payload file changes on disk.
type FileWatcher struct {
	logger   *zap.Logger
	debounce time.Duration
}

// New creates a FileWatcher. A non-positive debounce uses DefaultDebounce.
func New(logger *zap.Logger, debounce time.Duration) *FileWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{logger: logger, debounce: debounce}
}

// Watch blocks until ctx is done, calling onChange once per settled burst of
// writes to path. The parent directory is watched so that editors which
// replace the file by rename are still followed.
func (w *FileWatcher) Watch(ctx context.Context, path string, onChange func(path string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.logger.Debug("watching", zap.String("path", abs))

	tick := time.NewTicker(w.debounce / 3)
	defer tick.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("file event", zap.String("op", event.Op.String()), zap.String("path", event.Name))
			pending = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case now := <-tick.C:
			if !pending.IsZero() && now.Sub(pending) >= w.debounce {
				pending = time.Time{}
				onChange(abs)
			}
		}
	}
}
