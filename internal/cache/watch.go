package cache

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher invalidates a ParseResultCache whenever a .fsh file changes on
// disk. It owns no retry or backpressure logic: cache invalidation is cheap
// and idempotent, so a missed or duplicate event is harmless.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	cache     *ParseResultCache
	log       *logrus.Entry
	done      chan struct{}
}

// NewWatcher wraps an fsnotify.Watcher so that any create/write/remove/
// rename event for a .fsh path invalidates cache.
func NewWatcher(cache *ParseResultCache) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fw,
		cache:     cache,
		log:       logrus.WithField("component", "cache.watcher"),
		done:      make(chan struct{}),
	}, nil
}

// Add registers a directory to watch.
func (w *Watcher) Add(dir string) error {
	return w.fsWatcher.Add(dir)
}

// Run processes fsnotify events until Close is called. It is meant to run
// in its own goroutine.
func (w *Watcher) Run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("file watcher error")
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !strings.EqualFold(filepath.Ext(event.Name), ".fsh") {
		return
	}
	w.log.WithField("path", event.Name).WithField("op", event.Op.String()).Debug("invalidating parse cache")
	w.cache.InvalidateAll()
}

// Close stops the watcher and releases its underlying fsnotify resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}
