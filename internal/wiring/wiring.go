// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/polish/internal/adapters/cas"
	_ "go.trai.ch/polish/internal/adapters/config"
	_ "go.trai.ch/polish/internal/adapters/fs"
	_ "go.trai.ch/polish/internal/adapters/logger"
	_ "go.trai.ch/polish/internal/adapters/metrics"
	_ "go.trai.ch/polish/internal/adapters/report"
	_ "go.trai.ch/polish/internal/adapters/script"
	_ "go.trai.ch/polish/internal/adapters/telemetry"
	_ "go.trai.ch/polish/internal/adapters/treesitter"
	_ "go.trai.ch/polish/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/polish/internal/app"
	_ "go.trai.ch/polish/internal/engine/cache"
	_ "go.trai.ch/polish/internal/engine/registry"
)
