// Package watcher reports registered module files that disappear from disk.
package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleWatcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements ports.ModuleWatcher using fsnotify.
// fsnotify watches directories, so each module's parent directory is watched and
// events are filtered down to the registered files.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.ModuleEvent

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]int
}

// NewWatcher creates a new module watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create file watcher")
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		events:    make(chan ports.ModuleEvent, eventChannelBuffer),
		files:     make(map[string]struct{}),
		dirs:      make(map[string]int),
	}, nil
}

// Start begins processing file system events until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	go w.processEvents(ctx)
	return nil
}

// Watch adds a module file to the watch set. Watching a file twice is a no-op.
func (w *Watcher) Watch(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; ok {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch module directory"), "path", dir)
		}
	}
	w.dirs[dir]++
	w.files[path] = struct{}{}
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of module removal events.
func (w *Watcher) Events() iter.Seq[ports.ModuleEvent] {
	return func(yield func(ports.ModuleEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			moduleEvent, ok := w.convertEvent(event)
			if !ok {
				continue
			}

			select {
			case w.events <- moduleEvent:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("module watcher: " + err.Error())
		}
	}
}

// convertEvent maps a removal or rename of a watched file to a ModuleEvent and
// drops the file from the watch set.
func (w *Watcher) convertEvent(event fsnotify.Event) (ports.ModuleEvent, bool) {
	if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return ports.ModuleEvent{}, false
	}

	path := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; !ok {
		return ports.ModuleEvent{}, false
	}
	delete(w.files, path)

	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsWatcher.Remove(dir)
	}

	return ports.ModuleEvent{Path: path}, true
}
