// Package formatter applies the preferred per-language formatter to source files.
package formatter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/polish/internal/engine/batch"
	"go.trai.ch/polish/internal/engine/cache"
	"go.trai.ch/polish/internal/engine/registry"
	"go.trai.ch/zerr"
)

// Formatter produces format results for single files and batches of files.
type Formatter struct {
	registry *registry.Registry
	hasher   ports.Hasher
	logger   ports.Logger
	now      func() time.Time

	mu    sync.RWMutex
	cfg   *domain.Config
	cache *cache.Cache

	metricsMu sync.Mutex
	metrics   domain.PerformanceMetrics
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithClock overrides the time source used for durations.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		f.now = now
	}
}

// WithLogger reports skipped files at debug level.
func WithLogger(logger ports.Logger) Option {
	return func(f *Formatter) {
		f.logger = logger
	}
}

// New creates a Formatter using the default configuration and no cache.
func New(reg *registry.Registry, hasher ports.Hasher, opts ...Option) *Formatter {
	f := &Formatter{
		registry: reg,
		hasher:   hasher,
		now:      time.Now,
		cfg:      domain.DefaultConfig(),
		metrics:  domain.NewPerformanceMetrics(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetConfig replaces the configuration used for subsequent files.
func (f *Formatter) SetConfig(cfg *domain.Config) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg.Clone()
}

// SetCache sets the result cache. A nil cache disables caching.
func (f *Formatter) SetCache(c *cache.Cache) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache = c
}

// Metrics returns a copy of the accumulated metrics.
func (f *Formatter) Metrics() domain.PerformanceMetrics {
	f.metricsMu.Lock()
	defer f.metricsMu.Unlock()
	return f.metrics.Clone()
}

// ResetMetrics zeroes the accumulated metrics.
func (f *Formatter) ResetMetrics() {
	f.metricsMu.Lock()
	defer f.metricsMu.Unlock()
	f.metrics = domain.NewPerformanceMetrics()
}

type formatHashConfig struct {
	Language domain.Language      `json:"language"`
	Options  domain.FormatOptions `json:"options"`
	Plugin   string               `json:"plugin"`
	Version  string               `json:"version"`
}

// FormatFile formats one file with the preferred formatter for its language.
func (f *Formatter) FormatFile(_ context.Context, file domain.SourceFile) (*domain.FormatResult, error) {
	if !file.Language.IsSupported() {
		return nil, zerr.With(zerr.With(domain.ErrUnsupportedLanguage, "path", file.Path), "language", string(file.Language))
	}

	f.mu.RLock()
	cfg, c := f.cfg, f.cache
	f.mu.RUnlock()

	binding, ok := f.registry.PreferredFormatter(file.Language)
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrFormatterNotFound, "path", file.Path), "language", string(file.Language))
	}

	opts := cfg.Language(file.Language).Format
	hash, err := f.hasher.ContentHash([]byte(file.Content), formatHashConfig{
		Language: file.Language,
		Options:  opts,
		Plugin:   binding.Plugin,
		Version:  binding.Version,
	})
	if err != nil {
		return nil, zerr.With(err, "path", file.Path)
	}
	key := domain.NewCacheKey(domain.OperationFormat, file.Path, hash)

	if c != nil {
		if entry, ok := c.Get(key); ok && entry.Format != nil {
			result := *entry.Format
			result.Cached = true
			f.record(file, 0, true)
			return &result, nil
		}
	}

	start := f.now()
	formatted, err := run(binding.Formatter, file.Content, opts)
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrFormatFailed.Error()), "path", file.Path), "formatter", binding.Plugin)
	}

	result := &domain.FormatResult{
		FilePath:  file.Path,
		Formatted: formatted,
		Changed:   formatted != file.Content,
	}

	if c != nil {
		stored := *result
		c.Set(key, &domain.CacheEntry{Hash: hash, Format: &stored})
	}

	f.record(file, f.now().Sub(start), false)
	return result, nil
}

func run(formatter domain.Formatter, source string, opts domain.FormatOptions) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.New("formatter panicked"), "panic", fmt.Sprint(r))
		}
	}()
	return formatter.Format(source, opts)
}

// FormatFiles formats files in batches. Files that cannot be formatted are logged and left out.
func (f *Formatter) FormatFiles(ctx context.Context, files []domain.SourceFile) ([]domain.FormatResult, error) {
	f.mu.RLock()
	opts := batch.Options{Parallel: f.cfg.Parallel, Workers: f.cfg.WorkerCount()}
	f.mu.RUnlock()

	results, err := batch.Map(ctx, files, opts,
		func(ctx context.Context, file domain.SourceFile) (domain.FormatResult, error) {
			r, err := f.FormatFile(ctx, file)
			if err != nil {
				return domain.FormatResult{}, err
			}
			return *r, nil
		},
		func(file domain.SourceFile, err error) {
			if f.logger != nil {
				f.logger.Debug("skipping file", "path", file.Path, "error", err.Error())
			}
		},
	)
	if err != nil {
		return results, zerr.Wrap(err, "format batch interrupted")
	}
	return results, nil
}

func (f *Formatter) record(file domain.SourceFile, elapsed time.Duration, hit bool) {
	f.metricsMu.Lock()
	defer f.metricsMu.Unlock()

	f.metrics.FilesProcessed++
	f.metrics.LinesProcessed += file.Lines()
	if hit {
		f.metrics.CacheHits++
		return
	}
	f.metrics.CacheMisses++
	f.metrics.FormatDuration += elapsed
}
