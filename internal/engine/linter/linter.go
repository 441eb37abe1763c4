// Package linter runs the registered rules over source files.
package linter

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/polish/internal/engine/batch"
	"go.trai.ch/polish/internal/engine/cache"
	"go.trai.ch/polish/internal/engine/registry"
	"go.trai.ch/zerr"
)

// Linter produces lint results for single files and batches of files.
type Linter struct {
	registry *registry.Registry
	parser   ports.Parser
	hasher   ports.Hasher
	logger   ports.Logger
	now      func() time.Time

	mu    sync.RWMutex
	cfg   *domain.Config
	cache *cache.Cache
	cwd   string

	metricsMu sync.Mutex
	metrics   domain.PerformanceMetrics
}

// Option configures a Linter.
type Option func(*Linter)

// WithClock overrides the time source used for durations.
func WithClock(now func() time.Time) Option {
	return func(l *Linter) {
		l.now = now
	}
}

// WithLogger reports rule failures and skipped files at debug level.
func WithLogger(logger ports.Logger) Option {
	return func(l *Linter) {
		l.logger = logger
	}
}

// New creates a Linter using the default configuration and no cache.
func New(reg *registry.Registry, parser ports.Parser, hasher ports.Hasher, opts ...Option) *Linter {
	l := &Linter{
		registry: reg,
		parser:   parser,
		hasher:   hasher,
		now:      time.Now,
		cfg:      domain.DefaultConfig(),
		cwd:      ".",
		metrics:  domain.NewPerformanceMetrics(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetConfig replaces the configuration used for subsequent files.
func (l *Linter) SetConfig(cfg *domain.Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cfg = cfg.Clone()
}

// SetCache sets the result cache. A nil cache disables caching.
func (l *Linter) SetCache(c *cache.Cache) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = c
}

// SetCwd sets the working directory exposed to rules.
func (l *Linter) SetCwd(cwd string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cwd = cwd
}

func (l *Linter) snapshot() (*domain.Config, *cache.Cache, string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg, l.cache, l.cwd
}

// Metrics returns a copy of the accumulated metrics.
func (l *Linter) Metrics() domain.PerformanceMetrics {
	l.metricsMu.Lock()
	defer l.metricsMu.Unlock()
	return l.metrics.Clone()
}

// ResetMetrics zeroes the accumulated metrics.
func (l *Linter) ResetMetrics() {
	l.metricsMu.Lock()
	defer l.metricsMu.Unlock()
	l.metrics = domain.NewPerformanceMetrics()
}

type ruleSettings struct {
	Language    domain.Language               `json:"language"`
	Rules       map[string]domain.RuleSetting `json:"rules"`
	Fingerprint []string                      `json:"fingerprint"`
}

type lintHashConfig struct {
	Processor string         `json:"processor,omitempty"`
	Languages []ruleSettings `json:"languages"`
}

func (l *Linter) settingsFor(lang domain.Language, cfg *domain.Config) ruleSettings {
	s := ruleSettings{
		Language:    lang,
		Rules:       map[string]domain.RuleSetting{},
		Fingerprint: l.registry.Fingerprint(lang),
	}
	for _, b := range l.registry.RulesForLanguage(lang) {
		s.Rules[b.ID] = domain.RuleSetting{
			Level:   l.registry.Severity(b.ID, lang, cfg).String(),
			Options: l.registry.Options(b.ID, lang, cfg),
		}
	}
	return s
}

// LintFile lints one file. Files whose language is not supported fail with domain.ErrUnsupportedLanguage.
func (l *Linter) LintFile(ctx context.Context, file domain.SourceFile) (*domain.LintResult, error) {
	return l.lintFile(ctx, file, true)
}

// Relint lints a rewritten revision of a file LintFile has already seen.
// The file and its lines are not counted again in the metrics.
func (l *Linter) Relint(ctx context.Context, file domain.SourceFile) (*domain.LintResult, error) {
	return l.lintFile(ctx, file, false)
}

func (l *Linter) lintFile(ctx context.Context, file domain.SourceFile, count bool) (*domain.LintResult, error) {
	if !file.Language.IsSupported() {
		return nil, zerr.With(zerr.With(domain.ErrUnsupportedLanguage, "path", file.Path), "language", string(file.Language))
	}

	cfg, c, cwd := l.snapshot()
	ext := filepath.Ext(file.Path)
	proc, hasProc := l.registry.Processor(ext)

	hashCfg := lintHashConfig{}
	if hasProc {
		hashCfg.Processor = ext
		for _, lang := range domain.SupportedLanguages() {
			hashCfg.Languages = append(hashCfg.Languages, l.settingsFor(lang, cfg))
		}
	} else {
		hashCfg.Languages = []ruleSettings{l.settingsFor(file.Language, cfg)}
	}

	hash, err := l.hasher.ContentHash([]byte(file.Content), hashCfg)
	if err != nil {
		return nil, zerr.With(err, "path", file.Path)
	}
	key := domain.NewCacheKey(domain.OperationLint, file.Path, hash)

	if c != nil {
		if entry, ok := c.Get(key); ok && entry.Lint != nil {
			result := *entry.Lint
			result.Diagnostics = slices.Clone(result.Diagnostics)
			result.Failures = slices.Clone(result.Failures)
			result.Cached = true
			l.record(file, count, 0, nil, true)
			return &result, nil
		}
	}

	start := l.now()
	var run runStats
	var diagnostics []domain.Diagnostic
	var failures []domain.RuleFailure

	if hasProc {
		diagnostics, failures, err = l.lintFragments(ctx, proc, file, cfg, cwd, &run)
	} else {
		diagnostics, failures, err = l.lintSource(ctx, file.Language, file.Content, file.Path, cfg, cwd, &run)
	}
	if err != nil {
		return nil, err
	}

	result := &domain.LintResult{
		FilePath:    file.Path,
		Diagnostics: diagnostics,
		Failures:    failures,
	}
	if result.Diagnostics == nil {
		result.Diagnostics = []domain.Diagnostic{}
	}
	result.Tally()

	if c != nil {
		stored := *result
		c.Set(key, &domain.CacheEntry{Hash: hash, Lint: &stored})
	}

	l.record(file, count, l.now().Sub(start), &run, false)
	return result, nil
}

func (l *Linter) lintFragments(
	ctx context.Context,
	proc domain.Processor,
	file domain.SourceFile,
	cfg *domain.Config,
	cwd string,
	run *runStats,
) ([]domain.Diagnostic, []domain.RuleFailure, error) {
	fragments, err := preprocess(proc, file)
	if err != nil {
		return nil, nil, err
	}

	perFragment := make([][]domain.Diagnostic, len(fragments))
	var failures []domain.RuleFailure
	for i, frag := range fragments {
		lang, ok := domain.LanguageForPath(frag.Filename)
		if !ok {
			continue
		}
		diags, fails, err := l.lintSource(ctx, lang, frag.Text, file.Path, cfg, cwd, run)
		if err != nil {
			l.debug("skipping fragment", "path", file.Path, "fragment", frag.Filename, "error", err.Error())
			continue
		}
		perFragment[i] = diags
		failures = append(failures, fails...)
	}

	diagnostics, err := postprocess(proc, perFragment, file.Path)
	if err != nil {
		return nil, nil, err
	}
	if !proc.SupportsAutofix() {
		for i := range diagnostics {
			diagnostics[i].Fix = nil
		}
	}
	return diagnostics, failures, nil
}

func preprocess(proc domain.Processor, file domain.SourceFile) (fragments []domain.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.With(domain.ErrProcessorFailed, "path", file.Path), "panic", fmt.Sprint(r))
		}
	}()
	fragments, err = proc.Preprocess(file.Content, file.Path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrProcessorFailed.Error()), "path", file.Path)
	}
	return fragments, nil
}

func postprocess(proc domain.Processor, perFragment [][]domain.Diagnostic, path string) (out []domain.Diagnostic, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = zerr.With(zerr.With(domain.ErrProcessorFailed, "path", path), "panic", fmt.Sprint(r))
		}
	}()
	return proc.Postprocess(perFragment, path), nil
}

// lintSource parses source and runs every enabled rule of lang over it.
// Rules run in registration order, each with its own context and a single pre-order traversal.
func (l *Linter) lintSource(
	ctx context.Context,
	lang domain.Language,
	source string,
	path string,
	cfg *domain.Config,
	cwd string,
	run *runStats,
) ([]domain.Diagnostic, []domain.RuleFailure, error) {
	if !l.parser.Supports(lang) {
		return nil, nil, nil
	}

	type activeRule struct {
		binding  registry.RuleBinding
		severity domain.Severity
	}
	var active []activeRule
	for _, b := range l.registry.RulesForLanguage(lang) {
		sev := l.registry.Severity(b.ID, lang, cfg)
		if sev == domain.SeverityOff {
			continue
		}
		active = append(active, activeRule{binding: b, severity: sev})
	}
	if len(active) == 0 {
		return nil, nil, nil
	}

	root, err := l.parser.Parse(ctx, lang, []byte(source))
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, domain.ErrParseFailed.Error()), "path", path)
	}

	var diagnostics []domain.Diagnostic
	var failures []domain.RuleFailure
	for _, a := range active {
		rc := &ruleContext{
			id:       a.binding.ID,
			meta:     a.binding.Rule.Meta,
			severity: a.severity,
			source:   source,
			path:     path,
			cwd:      cwd,
			language: lang,
			options:  l.registry.Options(a.binding.ID, lang, cfg),
		}

		start := l.now()
		reason, failed := runRule(root, a.binding.Rule, rc)
		run.add(a.binding.ID, l.now().Sub(start))

		diagnostics = append(diagnostics, rc.diagnostics...)
		if failed {
			run.failures++
			failures = append(failures, domain.RuleFailure{RuleID: a.binding.ID, Reason: reason})
			l.debug("rule failed", "rule", a.binding.ID, "path", path, "reason", reason)
		}
	}
	return diagnostics, failures, nil
}

// runRule creates the rule's handlers and dispatches every node of root to the handler for its kind.
// The first error or panic stops the rule for this file; diagnostics reported before it are kept.
func runRule(root domain.Node, rule domain.Rule, rc *ruleContext) (reason string, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			reason, failed = fmt.Sprint(r), true
		}
	}()

	handlers := rule.Create(rc)
	if len(handlers) == 0 {
		return "", false
	}

	var ruleErr error
	domain.Walk(root, func(n domain.Node) {
		if ruleErr != nil {
			return
		}
		if h, ok := handlers[n.Kind()]; ok && h != nil {
			ruleErr = h(n)
		}
	})
	if ruleErr != nil {
		return ruleErr.Error(), true
	}
	return "", false
}

// LintFiles lints files in batches. Files that cannot be linted are logged and left out.
func (l *Linter) LintFiles(ctx context.Context, files []domain.SourceFile) ([]domain.LintResult, error) {
	cfg, _, _ := l.snapshot()
	opts := batch.Options{Parallel: cfg.Parallel, Workers: cfg.WorkerCount()}

	results, err := batch.Map(ctx, files, opts,
		func(ctx context.Context, f domain.SourceFile) (domain.LintResult, error) {
			r, err := l.LintFile(ctx, f)
			if err != nil {
				return domain.LintResult{}, err
			}
			return *r, nil
		},
		func(f domain.SourceFile, err error) {
			l.debug("skipping file", "path", f.Path, "error", err.Error())
		},
	)
	if err != nil {
		return results, zerr.Wrap(err, "lint batch interrupted")
	}
	return results, nil
}

type runStats struct {
	executions map[string]int
	durations  map[string]time.Duration
	failures   int
}

func (s *runStats) add(id string, d time.Duration) {
	if s.executions == nil {
		s.executions = map[string]int{}
		s.durations = map[string]time.Duration{}
	}
	s.executions[id]++
	s.durations[id] += d
}

func (l *Linter) record(file domain.SourceFile, count bool, elapsed time.Duration, run *runStats, hit bool) {
	l.metricsMu.Lock()
	defer l.metricsMu.Unlock()

	if count {
		l.metrics.FilesProcessed++
		l.metrics.LinesProcessed += file.Lines()
	}
	if hit {
		l.metrics.CacheHits++
		return
	}
	l.metrics.CacheMisses++
	l.metrics.LintDuration += elapsed
	if run == nil {
		return
	}
	l.metrics.RuleFailures += run.failures
	for id, n := range run.executions {
		l.metrics.RuleExecutions[id] += n
	}
	for id, d := range run.durations {
		l.metrics.RuleDurations[id] += d
	}
}

func (l *Linter) debug(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}
