package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of events an editor produces on save
const debounceDelay = 100 * time.Millisecond

// watchFile calls onChange after path is written or replaced, until ctx is
// cancelled. The parent directory is watched so editors that save through
// a rename are still seen. Errors from onChange are logged, not returned.
func watchFile(ctx context.Context, path string, logger *slog.Logger, onChange func() error) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}
	logger.Debug("watching for changes", "file", absPath)

	var (
		timer    *time.Timer
		debounce <-chan time.Time
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
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounceDelay)
			debounce = timer.C

		case <-debounce:
			debounce = nil
			logger.Debug("file changed", "file", absPath)
			if err := onChange(); err != nil {
				logger.Error("refresh failed", "file", absPath, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}
