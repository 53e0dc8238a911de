// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/forge/internal/adapters/config"
	_ "go.trai.ch/forge/internal/adapters/logger"
	_ "go.trai.ch/forge/internal/adapters/prompt"
	_ "go.trai.ch/forge/internal/adapters/telemetry"
	_ "go.trai.ch/forge/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/forge/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/forge/internal/app"
)
