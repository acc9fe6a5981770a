package app

import (
	"context"
	"sync"

	"go.trai.ch/dexopt/internal/core/ports"
)

var _ ports.ServiceManager = (*lazyServices)(nil)

// lazyServices connects to the daemon on the first service lookup.
type lazyServices struct {
	connect func(ctx context.Context) (ports.DaemonClient, error)

	mu     sync.Mutex
	client ports.DaemonClient
}

func (l *lazyServices) GetService(ctx context.Context, name string) (ports.Binder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client == nil {
		client, err := l.connect(ctx)
		if err != nil {
			return nil, err
		}
		l.client = client
	}
	return l.client.ServiceManager().GetService(ctx, name)
}

func (l *lazyServices) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.client == nil {
		return nil
	}
	err := l.client.Close()
	l.client = nil
	return err
}
