package daemon

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
)

// NodeID is the unique identifier for the daemon connector factory Graft node.
const NodeID graft.ID = "adapter.daemon"

// ConnectorFactory builds a connector once the configuration is known.
type ConnectorFactory func(configPath string, cfg domain.DaemonConfig) (ports.DaemonConnector, error)

func init() {
	graft.Register(graft.Node[ConnectorFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ConnectorFactory, error) {
			return func(configPath string, cfg domain.DaemonConfig) (ports.DaemonConnector, error) {
				return NewConnector(configPath, cfg)
			}, nil
		},
	})
}
