package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dexopt/internal/adapters/artifact"   //nolint:depguard // Wired in app layer
	"go.trai.ch/dexopt/internal/adapters/capability" //nolint:depguard // Wired in app layer
	"go.trai.ch/dexopt/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/dexopt/internal/adapters/daemon"     //nolint:depguard // Wired in app layer
	"go.trai.ch/dexopt/internal/adapters/dex2oat"    //nolint:depguard // Wired in app layer
	"go.trai.ch/dexopt/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/dexopt/internal/adapters/shell"      //nolint:depguard // Wired in app layer
	"go.trai.ch/dexopt/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/dexopt/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the components needed by the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			artifact.NodeID,
			telemetry.TracerNodeID,
			capability.NodeID,
			dex2oat.NodeID,
			daemon.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.ProcessRunner](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[ports.ArtifactResolver](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	selector, err := graft.Dep[*capability.Selector](ctx)
	if err != nil {
		return nil, err
	}
	compilers, err := graft.Dep[dex2oat.Factory](ctx)
	if err != nil {
		return nil, err
	}
	connectors, err := graft.Dep[daemon.ConnectorFactory](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, runner, resolver, tracer, selector, compilers, connectors, log), nil
}
