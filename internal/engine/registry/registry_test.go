package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/engine/registry"
)

func noopRule() domain.Rule {
	return domain.Rule{
		Meta:   domain.RuleMeta{Type: domain.RuleTypeProblem},
		Create: func(domain.RuleContext) domain.Handlers { return domain.Handlers{} },
	}
}

func upper() domain.Formatter {
	return domain.FormatterFunc(func(src string, _ domain.FormatOptions) (string, error) { return src + "!", nil })
}

type stubProcessor struct{ name string }

func (stubProcessor) Preprocess(text, filename string) ([]domain.Fragment, error) {
	return []domain.Fragment{{Text: text, Filename: filename}}, nil
}

func (stubProcessor) Postprocess(d [][]domain.Diagnostic, _ string) []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, ds := range d {
		out = append(out, ds...)
	}
	return out
}

func (stubProcessor) SupportsAutofix() bool { return false }

func acmePlugin(version string) *domain.Plugin {
	return &domain.Plugin{
		Name:      "acme",
		Version:   version,
		Languages: []domain.Language{domain.LanguageHTML, domain.LanguageCSS},
		Rules: map[string]domain.Rule{
			"no-marquee": noopRule(),
			"no-blink":   noopRule(),
		},
		Formatters: map[domain.Language]domain.Formatter{domain.LanguageCSS: upper()},
		Processors: map[string]domain.Processor{".vue": stubProcessor{name: "acme"}},
	}
}

func ruleIDs(bindings []registry.RuleBinding) []string {
	ids := make([]string, 0, len(bindings))
	for _, b := range bindings {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestRegistry_RegisterPlugin_Namespaces(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterBuiltinRule("require-alt", []domain.Language{domain.LanguageHTML}, noopRule()))
	require.NoError(t, r.RegisterPlugin(acmePlugin("1.0.0")))

	assert.Equal(t, []string{"require-alt", "acme/no-blink", "acme/no-marquee"}, ruleIDs(r.RulesForLanguage(domain.LanguageHTML)))
	assert.Equal(t, []string{"acme/no-blink", "acme/no-marquee"}, ruleIDs(r.RulesForLanguage(domain.LanguageCSS)))
	assert.Empty(t, r.RulesForLanguage(domain.LanguageYAML))

	info, ok := r.Rule("acme/no-marquee")
	require.True(t, ok)
	assert.Equal(t, "acme", info.Plugin)

	_, ok = r.Formatter("acme", domain.LanguageCSS)
	assert.True(t, ok)
	_, ok = r.Processor(".VUE")
	assert.True(t, ok)
	assert.Equal(t, []string{"acme"}, r.Plugins())
}

func TestRegistry_UnregisterPlugin_RemovesEverything(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterBuiltinRule("require-alt", []domain.Language{domain.LanguageHTML}, noopRule()))
	require.NoError(t, r.RegisterPlugin(acmePlugin("1.0.0")))

	r.UnregisterPlugin("acme")

	assert.Equal(t, []string{"require-alt"}, ruleIDs(r.RulesForLanguage(domain.LanguageHTML)))
	_, ok := r.Rule("acme/no-marquee")
	assert.False(t, ok)
	_, ok = r.Formatter("acme", domain.LanguageCSS)
	assert.False(t, ok)
	_, ok = r.Processor(".vue")
	assert.False(t, ok)
	assert.Empty(t, r.Plugins())

	r.UnregisterPlugin("never-registered")
}

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterPlugin(acmePlugin("1.0.0")))

	replacement := &domain.Plugin{
		Name:      "acme",
		Version:   "2.0.0",
		Languages: []domain.Language{domain.LanguageCSS},
		Rules:     map[string]domain.Rule{"no-important": noopRule()},
	}
	require.NoError(t, r.RegisterPlugin(replacement))

	assert.Equal(t, []string{"acme/no-important"}, ruleIDs(r.RulesForLanguage(domain.LanguageCSS)))
	assert.Empty(t, r.RulesForLanguage(domain.LanguageHTML))
	_, ok := r.Formatter("acme", domain.LanguageCSS)
	assert.False(t, ok)
	_, ok = r.Processor(".vue")
	assert.False(t, ok)
	assert.Equal(t, []string{"acme/no-important@2.0.0"}, r.Fingerprint(domain.LanguageCSS))
}

func TestRegistry_RegisterPlugin_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		plugin *domain.Plugin
	}{
		{name: "nil", plugin: nil},
		{name: "missing name", plugin: &domain.Plugin{Version: "1"}},
		{name: "missing version", plugin: &domain.Plugin{Name: "x"}},
		{name: "slash in name", plugin: &domain.Plugin{Name: "a/b", Version: "1"}},
		{name: "unsupported language", plugin: &domain.Plugin{Name: "x", Version: "1", Languages: []domain.Language{"cobol"}}},
		{name: "rule without factory", plugin: &domain.Plugin{Name: "x", Version: "1", Rules: map[string]domain.Rule{"r": {}}}},
		{name: "formatter for unsupported language", plugin: &domain.Plugin{
			Name: "x", Version: "1",
			Formatters: map[domain.Language]domain.Formatter{"cobol": upper()},
		}},
		{name: "processor key is not an extension", plugin: &domain.Plugin{
			Name: "x", Version: "1",
			Processors: map[string]domain.Processor{"vue": stubProcessor{}},
		}},
		{name: "unknown rule type", plugin: &domain.Plugin{
			Name: "x", Version: "1",
			Rules: map[string]domain.Rule{"r": {
				Meta:   domain.RuleMeta{Type: "style"},
				Create: func(domain.RuleContext) domain.Handlers { return nil },
			}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := registry.New()
			err := r.RegisterPlugin(tt.plugin)
			require.ErrorContains(t, err, domain.ErrInvalidPlugin.Error())
			assert.Empty(t, r.Plugins())
		})
	}
}

func TestRegistry_FailedReRegisterKeepsPrevious(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterPlugin(acmePlugin("1.0.0")))

	require.Error(t, r.RegisterPlugin(&domain.Plugin{Name: "acme"}))

	assert.Len(t, r.RulesForLanguage(domain.LanguageHTML), 2)
}

func TestRegistry_RegisterBuiltinRule_Duplicate(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterBuiltinRule("no-var", []domain.Language{domain.LanguageJavaScript}, noopRule()))
	require.Error(t, r.RegisterBuiltinRule("no-var", []domain.Language{domain.LanguageTypeScript}, noopRule()))
	require.Error(t, r.RegisterBuiltinRule("ns/rule", nil, noopRule()))
	require.Error(t, r.RegisterBuiltinRule("x", []domain.Language{"cobol"}, noopRule()))
}

func TestRegistry_Severity(t *testing.T) {
	r := registry.New()
	cfg := domain.DefaultConfig()
	cfg.Languages[domain.LanguageHTML] = domain.LanguageConfig{
		Enabled: true,
		Rules: map[string]domain.RuleSetting{
			"a": {Level: "error"},
			"b": {Level: "off"},
			"c": {Level: "warn"},
			"d": {Level: "critical"},
			"e": {Level: "error", Options: map[string]any{"tags": []any{"marquee"}}},
		},
	}

	assert.Equal(t, domain.SeverityError, r.Severity("a", domain.LanguageHTML, cfg))
	assert.Equal(t, domain.SeverityOff, r.Severity("b", domain.LanguageHTML, cfg))
	assert.Equal(t, domain.SeverityWarning, r.Severity("c", domain.LanguageHTML, cfg))
	assert.Equal(t, domain.SeverityWarning, r.Severity("d", domain.LanguageHTML, cfg))
	assert.Equal(t, domain.SeverityWarning, r.Severity("unset", domain.LanguageHTML, cfg))
	assert.Equal(t, domain.SeverityWarning, r.Severity("a", domain.LanguageCSS, cfg))
	assert.Equal(t, domain.SeverityWarning, r.Severity("a", domain.LanguageHTML, nil))

	assert.Equal(t, map[string]any{"tags": []any{"marquee"}}, r.Options("e", domain.LanguageHTML, cfg))
	assert.Equal(t, map[string]any{}, r.Options("a", domain.LanguageHTML, cfg))
}

func TestRegistry_FormattersForLanguage(t *testing.T) {
	r := registry.New()
	builtin := domain.FormatterFunc(func(s string, _ domain.FormatOptions) (string, error) { return "builtin", nil })
	require.NoError(t, r.RegisterBuiltinFormatter(domain.LanguageCSS, builtin))
	require.NoError(t, r.RegisterPlugin(acmePlugin("1")))

	second := &domain.Plugin{
		Name: "beta", Version: "1",
		Formatters: map[domain.Language]domain.Formatter{
			domain.LanguageCSS: domain.FormatterFunc(func(s string, _ domain.FormatOptions) (string, error) { return "beta", nil }),
		},
	}
	require.NoError(t, r.RegisterPlugin(second))

	fs := r.FormattersForLanguage(domain.LanguageCSS)
	require.Len(t, fs, 3)
	got, err := fs[0].Format("x", domain.FormatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "beta", got)
	got, err = fs[2].Format("x", domain.FormatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "builtin", got)

	_, ok := r.Formatter("", domain.LanguageCSS)
	assert.True(t, ok)
	require.Error(t, r.RegisterBuiltinFormatter("cobol", builtin))
}

func TestRegistry_ProcessorLastWins(t *testing.T) {
	r := registry.New()
	r.RegisterBuiltinProcessor(".md", stubProcessor{name: "builtin"})
	require.NoError(t, r.RegisterPlugin(&domain.Plugin{
		Name: "docs", Version: "1",
		Processors: map[string]domain.Processor{".md": stubProcessor{name: "docs"}},
	}))

	p, ok := r.Processor(".md")
	require.True(t, ok)
	assert.Equal(t, "docs", p.(stubProcessor).name)
}

func TestRegistry_ProcessorFallsBackToBuiltin(t *testing.T) {
	r := registry.New()
	r.RegisterBuiltinProcessor(".md", stubProcessor{name: "builtin"})
	for _, name := range []string{"docs", "notes"} {
		require.NoError(t, r.RegisterPlugin(&domain.Plugin{
			Name: name, Version: "1",
			Processors: map[string]domain.Processor{".md": stubProcessor{name: name}},
		}))
	}

	p, ok := r.Processor(".md")
	require.True(t, ok)
	assert.Equal(t, "notes", p.(stubProcessor).name)

	r.UnregisterPlugin("docs")
	p, ok = r.Processor(".md")
	require.True(t, ok)
	assert.Equal(t, "notes", p.(stubProcessor).name)

	r.UnregisterPlugin("notes")
	p, ok = r.Processor(".md")
	require.True(t, ok)
	assert.Equal(t, "builtin", p.(stubProcessor).name)

	r.RegisterBuiltinProcessor(".MD", stubProcessor{name: "replacement"})
	p, ok = r.Processor(".md")
	require.True(t, ok)
	assert.Equal(t, "replacement", p.(stubProcessor).name)
}

func TestRegistry_Fingerprint(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterBuiltinRule("require-alt", []domain.Language{domain.LanguageHTML}, noopRule()))
	before := r.Fingerprint(domain.LanguageHTML)
	assert.Equal(t, []string{"require-alt@builtin"}, before)

	require.NoError(t, r.RegisterPlugin(acmePlugin("1.0.0")))
	v1 := r.Fingerprint(domain.LanguageHTML)
	require.NoError(t, r.RegisterPlugin(acmePlugin("1.1.0")))
	v2 := r.Fingerprint(domain.LanguageHTML)

	assert.NotEqual(t, before, v1)
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, []string{"acme/no-blink@1.1.0", "acme/no-marquee@1.1.0", "require-alt@builtin"}, v2)
}

func TestRegistry_PreferredFormatter(t *testing.T) {
	r := registry.New()
	_, ok := r.PreferredFormatter(domain.LanguageCSS)
	assert.False(t, ok)

	require.NoError(t, r.RegisterBuiltinFormatter(domain.LanguageCSS, upper()))
	b, ok := r.PreferredFormatter(domain.LanguageCSS)
	require.True(t, ok)
	assert.Empty(t, b.Plugin)
	assert.Equal(t, "builtin", b.Version)

	require.NoError(t, r.RegisterPlugin(acmePlugin("3.1.0")))
	b, ok = r.PreferredFormatter(domain.LanguageCSS)
	require.True(t, ok)
	assert.Equal(t, "acme", b.Plugin)
	assert.Equal(t, "3.1.0", b.Version)
}

func TestNewWithBuiltins(t *testing.T) {
	r, err := registry.NewWithBuiltins(nil)
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, b := range r.RulesForLanguage(domain.LanguageCSS) {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"no-duplicate-properties", "no-empty-blocks"}, ids)

	for _, lang := range domain.SupportedLanguages() {
		binding, ok := r.PreferredFormatter(lang)
		require.True(t, ok, lang)
		assert.Equal(t, "builtin", binding.Version)
	}

	_, ok := r.Processor(".MD")
	assert.True(t, ok)
	assert.Empty(t, r.Plugins())
}
