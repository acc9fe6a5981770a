package capability

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dexopt/internal/adapters/reflective"
)

// NodeID is the unique identifier for the capability selector Graft node.
const NodeID graft.ID = "adapter.capability_selector"

func init() {
	graft.Register(graft.Node[*Selector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{reflective.RegistryNodeID, reflective.CacheNodeID},
		Run: func(ctx context.Context) (*Selector, error) {
			reg, err := graft.Dep[*reflective.Registry](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[*reflective.Cache](ctx)
			if err != nil {
				return nil, err
			}
			return NewSelector(reg, cache), nil
		},
	})
}
