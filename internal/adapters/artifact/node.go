package artifact

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dexopt/internal/adapters/logger"
	"go.trai.ch/dexopt/internal/core/ports"
)

// NodeID is the unique identifier for the artifact resolver Graft node.
const NodeID graft.ID = "adapter.artifact_resolver"

func init() {
	graft.Register(graft.Node[ports.ArtifactResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(log), nil
		},
	})
}
