package reflective

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	// RegistryNodeID is the unique identifier for the registry Graft node.
	RegistryNodeID graft.ID = "adapter.reflective_registry"
	// CacheNodeID is the unique identifier for the cache Graft node.
	CacheNodeID graft.ID = "adapter.reflective_cache"
)

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Registry, error) {
			return NewRegistry(), nil
		},
	})

	graft.Register(graft.Node[*Cache]{
		ID:        CacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RegistryNodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			reg, err := graft.Dep[*Registry](ctx)
			if err != nil {
				return nil, err
			}
			return NewCache(reg), nil
		},
	})
}
