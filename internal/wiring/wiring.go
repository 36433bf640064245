// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/composite/internal/adapters/config"
	_ "go.trai.ch/composite/internal/adapters/lifecycle"
	_ "go.trai.ch/composite/internal/adapters/logger"
	_ "go.trai.ch/composite/internal/adapters/renderer"
	_ "go.trai.ch/composite/internal/adapters/shell"
	_ "go.trai.ch/composite/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/composite/internal/app"
)
