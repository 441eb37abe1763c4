package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polish/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/metrics"    //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/report"     //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/script"     //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/telemetry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/treesitter" //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/polish/internal/engine/cache"
	"go.trai.ch/polish/internal/engine/registry"
)

// ComponentsNodeID is the unique identifier for the App components Graft node.
const ComponentsNodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			registry.NodeID,
			treesitter.NodeID,
			fs.HasherNodeID,
			fs.WorkspaceNodeID,
			script.NodeID,
			cache.NodeID,
			telemetry.NodeID,
			metrics.NodeID,
			report.NodeID,
			watcher.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runComponentsNode(ctx context.Context) (*Components, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	reg, err := graft.Dep[*registry.Registry](ctx)
	if err != nil {
		return nil, err
	}

	parser, err := graft.Dep[ports.Parser](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	workspace, err := graft.Dep[ports.Workspace](ctx)
	if err != nil {
		return nil, err
	}

	plugins, err := graft.Dep[ports.PluginLoader](ctx)
	if err != nil {
		return nil, err
	}

	caches, err := graft.Dep[cache.Factory](ctx)
	if err != nil {
		return nil, err
	}

	tracers, err := graft.Dep[telemetry.Factory](ctx)
	if err != nil {
		return nil, err
	}

	exporter, err := graft.Dep[ports.MetricsExporter](ctx)
	if err != nil {
		return nil, err
	}

	reporters, err := graft.Dep[*report.Catalog](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		Logger:       log,
		ConfigLoader: loader,
		Registry:     reg,
		Parser:       parser,
		Hasher:       hasher,
		Workspace:    workspace,
		PluginLoader: plugins,
		Caches:       caches,
		Tracers:      tracers,
		Metrics:      exporter,
		Reporters:    reporters,
		Watchers:     watchers,
	}, nil
}
