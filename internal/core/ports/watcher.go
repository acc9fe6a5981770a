package ports

import (
	"context"
	"iter"
)

//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// ModuleEvent reports that a registered module file disappeared.
type ModuleEvent struct {
	Path string
}

// ModuleWatcher observes registered module files.
type ModuleWatcher interface {
	// Start begins processing file system events.
	Start(ctx context.Context) error
	// Watch adds a module file to the watch set.
	Watch(path string) error
	// Stop releases all resources.
	Stop() error
	// Events yields an event for each watched file that is removed or renamed.
	Events() iter.Seq[ModuleEvent]
}
