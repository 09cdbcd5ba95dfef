package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docqa-labs/docqa-cli/internal/logger"
)

// Watch emits on the returned channel whenever files under the root change,
// debounced so a burst of writes triggers a single re-ingest. The watcher
// stops when ctx is cancelled.
func (c *Connector) Watch(ctx context.Context, debounce time.Duration) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the root and every subdirectory; fsnotify is not recursive.
	err = filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", c.rootPath, err)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		defer close(changes)

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				// New directories need their own watch.
				if event.Op&fsnotify.Create != 0 {
					watcher.Add(event.Name)
				}
				logger.Debug("change detected: %s (%s)", event.Name, event.Op)
				if timer == nil {
					timer = time.NewTimer(debounce)
					fire = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounce)
				}
			case <-fire:
				timer = nil
				fire = nil
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	return changes, nil
}
