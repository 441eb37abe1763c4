package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.trai.ch/polish/internal/adapters/fs"
	"go.trai.ch/polish/internal/adapters/treesitter"
	"go.trai.ch/polish/internal/app"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports/mocks"
	"go.trai.ch/polish/internal/engine/cache"
	"go.trai.ch/polish/internal/engine/registry"
)

const root = "/project"

type fixture struct {
	engine    *app.Engine
	workspace *mocks.MockWorkspace
	plugins   *mocks.MockPluginLoader
	logger    *mocks.MockLogger
	registry  *registry.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	parser := treesitter.NewParser()
	reg, err := registry.NewWithBuiltins(parser)
	require.NoError(t, err)

	f := &fixture{
		workspace: mocks.NewMockWorkspace(ctrl),
		plugins:   mocks.NewMockPluginLoader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		registry:  reg,
	}
	f.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	f.engine = app.NewEngine(reg, parser, fs.NewHasher(), f.workspace, f.plugins, f.logger)
	return f
}

// serve makes discovery return files, once per expected operation.
func (f *fixture) serve(times int, files ...domain.SourceFile) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}
	f.workspace.EXPECT().Discover(gomock.Any(), root, gomock.Any(), gomock.Any()).Return(paths, nil).Times(times)
	f.workspace.EXPECT().Load(gomock.Any(), paths).Return(files, nil).Times(times)
}

func source(name, content string) domain.SourceFile {
	return domain.NewSourceFile(filepath.Join(root, name), content)
}

func config(mutate func(cfg *domain.Config)) *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Root = root
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func withRule(cfg *domain.Config, lang domain.Language, id, level string) {
	lc := cfg.Languages[lang]
	lc.Enabled = true
	if lc.Rules == nil {
		lc.Rules = map[string]domain.RuleSetting{}
	}
	lc.Rules[id] = domain.RuleSetting{Level: level}
	cfg.Languages[lang] = lc
}

func TestEngine_LintFiles_Scenarios(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(func(cfg *domain.Config) {
		withRule(cfg, domain.LanguageHTML, "require-alt", "warn")
		withRule(cfg, domain.LanguageCSS, "no-duplicate-properties", "error")
	}))
	f.serve(1,
		source("index.html", `<img src="a.jpg">`),
		source("site.css", ".a{color:red;color:blue;}"),
	)

	results, err := f.engine.LintFiles(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	html := results[0]
	require.Len(t, html.Diagnostics, 1)
	assert.Equal(t, "require-alt", html.Diagnostics[0].RuleID)
	assert.Equal(t, domain.SeverityWarning, html.Diagnostics[0].Severity)

	css := results[1]
	require.NotEmpty(t, css.Diagnostics)
	assert.Equal(t, "no-duplicate-properties", css.Diagnostics[0].RuleID)
	assert.Equal(t, domain.SeverityError, css.Diagnostics[0].Severity)
	assert.Equal(t, 1, css.ErrorCount)
}

func TestEngine_LintFiles_PassesPatterns(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(nil))

	file := source("a.css", ".a {\n  color: red;\n}\n")
	f.workspace.EXPECT().Discover(gomock.Any(), root, []string{"src/**/*.css"}, gomock.Any()).Return([]string{file.Path}, nil)
	f.workspace.EXPECT().Load(gomock.Any(), []string{file.Path}).Return([]domain.SourceFile{file}, nil)

	results, err := f.engine.LintFiles(context.Background(), []string{"src/**/*.css"})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestEngine_LintFiles_SkipsDisabledAndUnknown(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(func(cfg *domain.Config) {
		cfg.Languages[domain.LanguageYAML] = domain.LanguageConfig{Enabled: false}
	}))
	f.serve(1,
		source("a.yaml", "a: 1\na: 2\n"),
		source("notes.txt", "plain"),
		source("b.css", ".b {\n  margin: 0;\n}\n"),
	)

	results, err := f.engine.LintFiles(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(root, "b.css"), results[0].FilePath)
}

func TestEngine_LintFiles_DiscoveryError(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(nil))
	f.workspace.EXPECT().Discover(gomock.Any(), root, gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrInvalidPattern)

	_, err := f.engine.LintFiles(context.Background(), []string{"["})
	require.ErrorIs(t, err, domain.ErrInvalidPattern)
}

func TestEngine_CheckFiles(t *testing.T) {
	t.Run("one error fails", func(t *testing.T) {
		f := newFixture(t)
		f.engine.UpdateConfig(config(func(cfg *domain.Config) {
			withRule(cfg, domain.LanguageCSS, "no-duplicate-properties", "error")
		}))
		f.serve(1, source("a.css", ".a{color:red;color:blue;}"))

		res, err := f.engine.CheckFiles(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, res.Passed)
		assert.Equal(t, 1, res.ErrorCount)
	})

	t.Run("clean formatted file passes", func(t *testing.T) {
		f := newFixture(t)
		f.engine.UpdateConfig(config(func(cfg *domain.Config) {
			withRule(cfg, domain.LanguageCSS, "no-duplicate-properties", "error")
		}))
		f.serve(1, source("a.css", ".a {\n  color: red;\n}\n"))

		res, err := f.engine.CheckFiles(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, res.Passed)
		assert.Zero(t, res.ErrorCount)
	})

	t.Run("warnings alone pass", func(t *testing.T) {
		f := newFixture(t)
		f.engine.UpdateConfig(config(nil))
		f.serve(1, source("a.html", `<img src="a.jpg">`))

		res, err := f.engine.CheckFiles(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, res.Passed)
		assert.Equal(t, 1, res.WarningCount)
	})
}

func TestEngine_FormatFiles(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(nil))
	f.serve(2,
		source("a.css", ".a{color:red}"),
		source("b.css", ".b {\n  margin: 0;\n}\n"),
	)

	results, err := f.engine.FormatFiles(context.Background(), nil, false)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Changed)
	assert.Equal(t, ".a {\n  color: red;\n}\n", results[0].Formatted)
	assert.False(t, results[1].Changed)

	f.workspace.EXPECT().Write(filepath.Join(root, "a.css"), ".a {\n  color: red;\n}\n").Return(nil)
	_, err = f.engine.FormatFiles(context.Background(), nil, true)
	require.NoError(t, err)
}

func TestEngine_FormatFiles_WriteFailure(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(nil))
	f.serve(1, source("a.css", ".a{color:red}"))
	f.workspace.EXPECT().Write(gomock.Any(), gomock.Any()).Return(domain.ErrFileWriteFailed)

	_, err := f.engine.FormatFiles(context.Background(), nil, true)
	require.ErrorIs(t, err, domain.ErrFileWriteFailed)
}

func TestEngine_LintAndFormat_ParallelMatchesSequential(t *testing.T) {
	files := []domain.SourceFile{
		source("a.css", ".a{color:red;color:blue;}"),
		source("b.html", `<img src="a.jpg">`),
		source("c.js", "var a = 1;\n"),
		source("d.yaml", "a: 1\na: 2\n"),
		source("e.css", ".e {\n}\n"),
	}

	run := func(parallel bool) *app.Combined {
		f := newFixture(t)
		f.engine.UpdateConfig(config(func(cfg *domain.Config) {
			cfg.Parallel = parallel
			cfg.Workers = 2
		}))
		f.serve(1, files...)
		out, err := f.engine.LintAndFormat(context.Background(), nil)
		require.NoError(t, err)
		return out
	}

	seq, par := run(false), run(true)
	require.Len(t, seq.Lint, len(files))
	require.Len(t, seq.Format, len(files))
	assert.Equal(t, seq.Lint, par.Lint)
	assert.Equal(t, seq.Format, par.Format)
}

func TestEngine_UpdateConfigKeepsCache(t *testing.T) {
	f := newFixture(t)
	c, err := cache.New(100, nil)
	require.NoError(t, err)
	f.engine.SetCache(c)
	f.engine.UpdateConfig(config(nil))
	f.serve(2, source("a.css", ".a {\n  color: red;\n}\n"))

	_, err = f.engine.LintFiles(context.Background(), nil)
	require.NoError(t, err)

	f.engine.UpdateConfig(config(func(cfg *domain.Config) { cfg.Workers = 8 }))
	results, err := f.engine.LintFiles(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Cached)

	m := f.engine.Metrics()
	assert.Equal(t, 1, m.CacheHits)
	assert.Equal(t, 1, m.CacheMisses)
}

func TestEngine_Metrics(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(nil))
	file := source("a.css", ".a {\n  color: red;\n}\n")
	f.serve(2, file)

	_, err := f.engine.LintFiles(context.Background(), nil)
	require.NoError(t, err)
	_, err = f.engine.FormatFiles(context.Background(), nil, false)
	require.NoError(t, err)

	m := f.engine.Metrics()
	assert.Equal(t, 1, m.FilesProcessed, "files take the maximum of lint and format")
	assert.Equal(t, file.Lines(), m.LinesProcessed)
	assert.Equal(t, 2, m.CacheMisses, "misses are summed")
	assert.Positive(t, m.RuleExecutions["no-duplicate-properties"])

	f.engine.ResetMetrics()
	m = f.engine.Metrics()
	assert.Zero(t, m.FilesProcessed)
	assert.Zero(t, m.CacheMisses)
	assert.Empty(t, m.RuleExecutions)
}

func TestEngine_LoadPlugins_BestEffort(t *testing.T) {
	f := newFixture(t)

	marquee := domain.Rule{
		Meta: domain.RuleMeta{Type: domain.RuleTypeProblem},
		Create: func(ctx domain.RuleContext) domain.Handlers {
			return domain.Handlers{
				"tag_name": func(n domain.Node) error {
					if strings.EqualFold(n.Text(), "marquee") {
						ctx.Report(domain.Report{Node: n, Message: "obsolete tag"})
					}
					return nil
				},
			}
		},
	}
	good := domain.PluginRef{Path: "plugins/acme"}
	missing := domain.PluginRef{Path: "plugins/missing"}
	invalid := domain.PluginRef{Path: "plugins/invalid"}

	f.plugins.EXPECT().Load(gomock.Any(), missing).Return(nil, domain.ErrPluginLoadFailed)
	f.plugins.EXPECT().Load(gomock.Any(), invalid).Return(&domain.Plugin{Name: "broken"}, nil)
	f.plugins.EXPECT().Load(gomock.Any(), good).Return(&domain.Plugin{
		Name:      "acme",
		Version:   "1.0.0",
		Languages: []domain.Language{domain.LanguageHTML},
		Rules:     map[string]domain.Rule{"no-marquee": marquee},
	}, nil)

	loaded := f.engine.LoadPlugins(context.Background(), []domain.PluginRef{missing, invalid, good})
	assert.Equal(t, []string{"acme"}, loaded)

	f.engine.UpdateConfig(config(nil))
	f.serve(1, source("a.html", `<marquee>hi</marquee>`))
	results, err := f.engine.LintFiles(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, results, 1)

	var ids []string
	for _, d := range results[0].Diagnostics {
		ids = append(ids, d.RuleID)
	}
	assert.Contains(t, ids, "acme/no-marquee")
}

func TestEngine_Rules(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(func(cfg *domain.Config) {
		withRule(cfg, domain.LanguageCSS, "no-empty-blocks", "off")
		withRule(cfg, domain.LanguageCSS, "no-duplicate-properties", "error")
	}))

	rules, err := f.engine.Rules(domain.LanguageCSS)
	require.NoError(t, err)
	got := map[string]domain.Severity{}
	for _, r := range rules {
		got[r.ID] = r.Severity
	}
	assert.Equal(t, map[string]domain.Severity{
		"no-duplicate-properties": domain.SeverityError,
		"no-empty-blocks":         domain.SeverityOff,
	}, got)

	all, err := f.engine.Rules("")
	require.NoError(t, err)
	assert.Len(t, all, len(f.registry.Rules()))

	_, err = f.engine.Rules("cobol")
	require.ErrorContains(t, err, domain.ErrUnsupportedLanguage.Error())
}

func TestEngine_FixFiles(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(nil))
	js := source("a.js", "var a = 1;\ndebugger;\n")
	css := source("b.css", ".b {\n  margin: 0;\n}\n")
	f.serve(1, js, css)

	var mu sync.Mutex
	written := map[string]string{}
	f.workspace.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(path, content string) error {
		mu.Lock()
		defer mu.Unlock()
		written[path] = content
		return nil
	})

	res, err := f.engine.FixFiles(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "a.js")}, res.Fixed)
	assert.Equal(t, 2, res.Applied)
	require.Len(t, res.Results, 2)
	assert.Empty(t, res.Results[0].Diagnostics)

	out := written[filepath.Join(root, "a.js")]
	assert.True(t, strings.HasPrefix(out, "let a = 1;"), out)
	assert.NotContains(t, out, "debugger")

	m := f.engine.Metrics()
	assert.Equal(t, 2, m.FilesProcessed, "re-lint passes do not count the file again")
	assert.Equal(t, js.Lines()+css.Lines(), m.LinesProcessed)
}

func TestEngine_PurgeAndEvict(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.PurgeCache(), "no cache is a no-op")
	f.engine.EvictWorkingSet()

	c, err := cache.New(10, nil)
	require.NoError(t, err)
	f.engine.SetCache(c)
	c.Set("lint:a:1", &domain.CacheEntry{Hash: "1"})
	require.Equal(t, 1, c.Len())

	f.engine.EvictWorkingSet()
	assert.Zero(t, c.Len())
	require.NoError(t, f.engine.PurgeCache())
	require.NoError(t, f.engine.Close(context.Background()))
}

func TestEngine_ContextCanceled(t *testing.T) {
	f := newFixture(t)
	f.engine.UpdateConfig(config(func(cfg *domain.Config) { cfg.Parallel = false }))
	f.serve(1, source("a.css", ".a {}"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.engine.LintFiles(ctx, nil)
	require.True(t, errors.Is(err, context.Canceled))
}
