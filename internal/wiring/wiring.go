// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/dexopt/internal/adapters/artifact"
	_ "go.trai.ch/dexopt/internal/adapters/capability"
	_ "go.trai.ch/dexopt/internal/adapters/config"
	_ "go.trai.ch/dexopt/internal/adapters/daemon"
	_ "go.trai.ch/dexopt/internal/adapters/dex2oat"
	_ "go.trai.ch/dexopt/internal/adapters/logger"
	_ "go.trai.ch/dexopt/internal/adapters/reflective"
	_ "go.trai.ch/dexopt/internal/adapters/shell"
	_ "go.trai.ch/dexopt/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/dexopt/internal/app"
)
