package binder

import (
	"context"
	"sync"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// HandleCache lazily acquires the raw package service handle and the package
// manager stub built on it. Both are revalidated before reuse and re-acquired
// together when the remote has died.
type HandleCache struct {
	services ports.ServiceManager

	mu      sync.Mutex
	raw     ports.Binder
	manager *PackageManager

	group singleflight.Group
}

// NewHandleCache creates an empty cache.
func NewHandleCache(services ports.ServiceManager) *HandleCache {
	return &HandleCache{services: services}
}

type handles struct {
	raw     ports.Binder
	manager *PackageManager
}

// Raw returns a live raw handle to the package service.
func (c *HandleCache) Raw(ctx context.Context) (ports.Binder, error) {
	h, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	return h.raw, nil
}

// PackageManager returns a live package manager stub.
func (c *HandleCache) PackageManager(ctx context.Context) (*PackageManager, error) {
	h, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	return h.manager, nil
}

// IsAlive reports whether a cached handle exists and still answers.
func (c *HandleCache) IsAlive(ctx context.Context) bool {
	c.mu.Lock()
	raw := c.raw
	c.mu.Unlock()

	return raw != nil && raw.IsAlive(ctx)
}

// Refresh drops the cached handles and acquires fresh ones.
func (c *HandleCache) Refresh(ctx context.Context) error {
	c.invalidate(nil)
	_, err := c.acquire(ctx)
	return err
}

func (c *HandleCache) get(ctx context.Context) (handles, error) {
	c.mu.Lock()
	h := handles{raw: c.raw, manager: c.manager}
	c.mu.Unlock()

	if h.raw != nil {
		if h.raw.IsAlive(ctx) {
			return h, nil
		}
		c.invalidate(h.raw)
	}

	return c.acquire(ctx)
}

// invalidate clears the cache if it still holds stale, or unconditionally when stale is nil.
func (c *HandleCache) invalidate(stale ports.Binder) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if stale == nil || c.raw == stale {
		c.raw = nil
		c.manager = nil
	}
}

// acquire shares one lookup between concurrent callers. The lookup runs detached
// from the caller that started it; each caller stops waiting when its own ctx ends.
func (c *HandleCache) acquire(ctx context.Context) (handles, error) {
	lookupCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(domain.PackageServiceName, func() (any, error) {
		c.mu.Lock()
		if c.raw != nil {
			h := handles{raw: c.raw, manager: c.manager}
			c.mu.Unlock()
			return h, nil
		}
		c.mu.Unlock()

		raw, err := c.services.GetService(lookupCtx, domain.PackageServiceName)
		if err != nil {
			return handles{}, zerr.With(zerr.Wrap(err, domain.ErrServiceNotFound.Error()), "service", domain.PackageServiceName)
		}

		h := handles{raw: raw, manager: NewPackageManager(raw)}

		c.mu.Lock()
		c.raw = h.raw
		c.manager = h.manager
		c.mu.Unlock()

		return h, nil
	})

	select {
	case <-ctx.Done():
		return handles{}, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrServiceNotFound.Error()), "service", domain.PackageServiceName)
	case res := <-ch:
		if res.Err != nil {
			return handles{}, res.Err
		}
		return res.Val.(handles), nil //nolint:forcetypeassert // the flight only returns handles
	}
}
