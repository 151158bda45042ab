// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/stevedore/internal/adapters/cas"
	_ "go.trai.ch/stevedore/internal/adapters/config"
	_ "go.trai.ch/stevedore/internal/adapters/docker"
	_ "go.trai.ch/stevedore/internal/adapters/env"
	_ "go.trai.ch/stevedore/internal/adapters/fs"
	_ "go.trai.ch/stevedore/internal/adapters/logger"
	_ "go.trai.ch/stevedore/internal/adapters/shell"
	_ "go.trai.ch/stevedore/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/stevedore/internal/app"
	_ "go.trai.ch/stevedore/internal/engine/exporter"
	_ "go.trai.ch/stevedore/internal/engine/reconciler"
	_ "go.trai.ch/stevedore/internal/tui"
)
