package filesystem

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/shiori/internal/core/domain"
	"github.com/custodia-labs/shiori/internal/logger"
)

// invalidatingOps are the operations that can change what a reload would see.
// Chmod is included because touch on Linux only raises an attribute event.
const invalidatingOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename | fsnotify.Chmod

// Watch marks the corpus dirty whenever an eligible file in the directory
// changes. Each invalidating file name is sent on the returned channel;
// sends never block, so callers may ignore it. The watcher stops and the
// channel is closed when ctx is cancelled.
func (c *Corpus) Watch(ctx context.Context) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(c.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", c.dir, err)
	}

	changes := make(chan string, 16)
	go func() {
		defer close(changes)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				name, invalidates := handleEvent(event)
				if !invalidates {
					continue
				}
				logger.Debug("Corpus change: %s %s", event.Op, name)
				c.Invalidate()
				select {
				case changes <- name:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("Corpus watcher error: %v", err)
			}
		}
	}()

	logger.Debug("Watching %s for changes", c.dir)
	return changes, nil
}

// handleEvent reports whether event should invalidate the cache, and the
// file name it concerns.
func handleEvent(event fsnotify.Event) (string, bool) {
	name := filepath.Base(event.Name)
	if !domain.IsEligibleFile(name) {
		return name, false
	}
	return name, event.Op&invalidatingOps != 0
}
