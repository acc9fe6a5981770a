package dex2oat

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dexopt/internal/adapters/logger"
	"go.trai.ch/dexopt/internal/adapters/shell"
	"go.trai.ch/dexopt/internal/core/ports"
)

// NodeID is the unique identifier for the compiler factory Graft node.
const NodeID graft.ID = "adapter.dex2oat"

// Factory builds a Compiler for a configured executable and environment.
type Factory func(executable string, env map[string]string) ports.ArtifactCompiler

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func(executable string, env map[string]string) ports.ArtifactCompiler {
				return NewCompiler(runner, log, executable, env)
			}, nil
		},
	})
}
