package app

import (
	"context"

	"go.trai.ch/polish/internal/adapters/report"    //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/polish/internal/engine/cache"
	"go.trai.ch/polish/internal/engine/registry"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
	Registry     *registry.Registry
	Parser       ports.Parser
	Hasher       ports.Hasher
	Workspace    ports.Workspace
	PluginLoader ports.PluginLoader
	Caches       cache.Factory
	Tracers      telemetry.Factory
	Metrics      ports.MetricsExporter
	Reporters    *report.Catalog
	Watchers     watcher.Factory
}

// OpenOptions selects the configuration an Engine is opened with.
type OpenOptions struct {
	// Cwd is where configuration discovery starts.
	Cwd string
	// ConfigPath names the configuration file explicitly.
	ConfigPath string
	// TraceFile receives the spans of the session when set.
	TraceFile string
	// Override adjusts the loaded configuration, typically from command line flags.
	Override func(cfg *domain.Config)
}

// Open loads the configuration and returns an Engine with its plugins registered and its cache attached.
// A cache that cannot be opened is logged at debug level and the engine runs without one.
func (c *Components) Open(ctx context.Context, opts OpenOptions) (*Engine, error) {
	cfg, err := c.ConfigLoader.Load(opts.Cwd, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Override != nil {
		opts.Override(cfg)
	}
	c.Logger.SetVerbose(cfg.Verbose)

	tracer, err := c.Tracers(opts.TraceFile)
	if err != nil {
		return nil, err
	}

	engine := NewEngine(c.Registry, c.Parser, c.Hasher, c.Workspace, c.PluginLoader, c.Logger).WithTracer(tracer)
	engine.LoadPlugins(ctx, cfg.Plugins)
	engine.UpdateConfig(cfg)

	store, err := c.Caches(cfg.Cache)
	if err != nil {
		c.Logger.Debug("cache unavailable", "dir", cfg.Cache.Dir, "error", err.Error())
		return engine, nil
	}
	engine.SetCache(store)
	return engine, nil
}
