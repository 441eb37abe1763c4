// Package app implements the application layer for polish.
package app

import (
	"context"
	"sync"

	"go.trai.ch/polish/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/polish/internal/engine/cache"
	"go.trai.ch/polish/internal/engine/formatter"
	"go.trai.ch/polish/internal/engine/linter"
	"go.trai.ch/polish/internal/engine/registry"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates discovery, loading and batched execution across many files.
// It owns one registry and at most one cache; metrics are scoped to the instance.
type Engine struct {
	registry  *registry.Registry
	linter    *linter.Linter
	formatter *formatter.Formatter
	workspace ports.Workspace
	plugins   ports.PluginLoader
	logger    ports.Logger
	tracer    ports.Tracer

	mu    sync.RWMutex
	cfg   *domain.Config
	cache *cache.Cache
}

// NewEngine creates an Engine using the default configuration and no cache.
func NewEngine(
	reg *registry.Registry,
	parser ports.Parser,
	hasher ports.Hasher,
	workspace ports.Workspace,
	plugins ports.PluginLoader,
	log ports.Logger,
) *Engine {
	e := &Engine{
		registry:  reg,
		linter:    linter.New(reg, parser, hasher, linter.WithLogger(log)),
		formatter: formatter.New(reg, hasher, formatter.WithLogger(log)),
		workspace: workspace,
		plugins:   plugins,
		logger:    log,
		tracer:    telemetry.NewNoOpTracer(),
	}
	e.UpdateConfig(domain.DefaultConfig())
	return e
}

// WithTracer sets the tracer that receives one span per operation.
func (e *Engine) WithTracer(t ports.Tracer) *Engine {
	if t != nil {
		e.tracer = t
	}
	return e
}

// LoadPlugins loads and registers the referenced plugins. Loading is best-effort:
// a plugin that fails to load or register is logged at debug level and skipped.
// The names of the registered plugins are returned.
func (e *Engine) LoadPlugins(ctx context.Context, refs []domain.PluginRef) []string {
	var loaded []string
	for _, ref := range refs {
		p, err := e.plugins.Load(ctx, ref)
		if err == nil {
			err = e.registry.RegisterPlugin(p)
		}
		if err != nil {
			e.logger.Debug("skipping plugin", "path", ref.Path, "error", err.Error())
			continue
		}
		e.logger.Debug("plugin loaded", "name", p.Name, "version", p.Version)
		loaded = append(loaded, p.Name)
	}
	return loaded
}

// UpdateConfig replaces the configuration used for filtering and execution. The cache is left untouched.
func (e *Engine) UpdateConfig(cfg *domain.Config) {
	cfg = cfg.Clone()
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()

	e.linter.SetConfig(cfg)
	e.linter.SetCwd(cfg.Root)
	e.formatter.SetConfig(cfg)
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() *domain.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Clone()
}

// SetCache attaches the result cache. A nil cache disables caching.
func (e *Engine) SetCache(c *cache.Cache) {
	e.mu.Lock()
	e.cache = c
	e.mu.Unlock()

	e.linter.SetCache(c)
	e.formatter.SetCache(c)
}

// Registry returns the registry the engine executes against.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// LintFiles lints every enabled file matching patterns, or the configured include patterns when none are given.
func (e *Engine) LintFiles(ctx context.Context, patterns []string) ([]domain.LintResult, error) {
	ctx, span := e.tracer.Start(ctx, "lint")
	defer span.End()

	files, err := e.collect(ctx, patterns)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("files", len(files))

	results, err := e.linter.LintFiles(ctx, files)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return results, nil
}

// FormatFiles formats every enabled file matching patterns. With write set, every changed
// file is written back concurrently, with no ordering between files.
func (e *Engine) FormatFiles(ctx context.Context, patterns []string, write bool) ([]domain.FormatResult, error) {
	ctx, span := e.tracer.Start(ctx, "format")
	defer span.End()
	span.SetAttribute("write", write)

	files, err := e.collect(ctx, patterns)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("files", len(files))

	results, err := e.formatter.FormatFiles(ctx, files)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if write {
		if err := e.writeChanged(ctx, results); err != nil {
			span.RecordError(err)
			return results, err
		}
	}
	return results, nil
}

func (e *Engine) writeChanged(ctx context.Context, results []domain.FormatResult) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Config().WorkerCount())
	for _, r := range results {
		if !r.Changed {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return e.workspace.Write(r.FilePath, r.Formatted)
		})
	}
	return g.Wait()
}

// Combined holds the outcome of LintAndFormat.
type Combined struct {
	Lint   []domain.LintResult
	Format []domain.FormatResult
}

// LintAndFormat lints and formats the same file set, concurrently in parallel mode
// and one after the other otherwise. Nothing is written.
func (e *Engine) LintAndFormat(ctx context.Context, patterns []string) (*Combined, error) {
	ctx, span := e.tracer.Start(ctx, "lint_and_format")
	defer span.End()

	files, err := e.collect(ctx, patterns)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("files", len(files))

	out := &Combined{}
	lint := func(ctx context.Context) error {
		r, err := e.linter.LintFiles(ctx, files)
		out.Lint = r
		return err
	}
	format := func(ctx context.Context) error {
		r, err := e.formatter.FormatFiles(ctx, files)
		out.Format = r
		return err
	}

	if e.Config().Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return lint(gctx) })
		g.Go(func() error { return format(gctx) })
		err = g.Wait()
	} else {
		err = lint(ctx)
		if err == nil {
			err = format(ctx)
		}
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

// CheckResult is the outcome of CheckFiles.
type CheckResult struct {
	Results      []domain.LintResult
	ErrorCount   int
	WarningCount int
	// Passed is true when no error-severity diagnostic was reported.
	Passed bool
}

// CheckFiles lints the matching files and passes iff the aggregate error count is zero.
func (e *Engine) CheckFiles(ctx context.Context, patterns []string) (*CheckResult, error) {
	results, err := e.LintFiles(ctx, patterns)
	if err != nil {
		return nil, err
	}
	out := &CheckResult{Results: results}
	for _, r := range results {
		out.ErrorCount += r.ErrorCount
		out.WarningCount += r.WarningCount
	}
	out.Passed = out.ErrorCount == 0
	return out, nil
}

// Metrics returns the combined lint and format metrics.
// Counters and durations are summed; files and lines take the maximum of the two.
func (e *Engine) Metrics() domain.PerformanceMetrics {
	return domain.Combine(e.linter.Metrics(), e.formatter.Metrics())
}

// ResetMetrics zeroes the metrics of both subsystems.
func (e *Engine) ResetMetrics() {
	e.linter.ResetMetrics()
	e.formatter.ResetMetrics()
}

// EvictWorkingSet empties the in-memory cache tier. The persistent tier is kept.
func (e *Engine) EvictWorkingSet() {
	e.mu.RLock()
	c := e.cache
	e.mu.RUnlock()
	if c != nil {
		c.EvictWorkingSet()
	}
}

// PurgeCache empties both cache tiers.
func (e *Engine) PurgeCache() error {
	e.mu.RLock()
	c := e.cache
	e.mu.RUnlock()
	if c == nil {
		return nil
	}
	return c.Purge()
}

// Close flushes the tracer.
func (e *Engine) Close(ctx context.Context) error {
	return e.tracer.Shutdown(ctx)
}

// collect discovers and loads the files of one operation and drops those whose language is disabled or unknown.
func (e *Engine) collect(ctx context.Context, patterns []string) ([]domain.SourceFile, error) {
	cfg := e.Config()
	include := patterns
	if len(include) == 0 {
		include = cfg.Include
	}

	paths, err := e.workspace.Discover(ctx, cfg.Root, include, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	files, err := e.workspace.Load(ctx, paths)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SourceFile, 0, len(files))
	for _, f := range files {
		if !cfg.LanguageEnabled(f.Language) {
			e.logger.Debug("skipping file", "path", f.Path, "language", f.Language.String())
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
