// Package registry keeps the rules, formatters and processors contributed by
// plugins and by polish itself.
package registry

import (
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/zerr"
)

// pluginValidate checks plugin and rule shapes against their struct tags.
var pluginValidate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return domain.Language(fl.Field().String()).IsSupported()
	})
	_ = v.RegisterValidation("extension", func(fl validator.FieldLevel) bool {
		ext := fl.Field().String()
		return len(ext) > 1 && ext[0] == '.' && !strings.ContainsAny(ext, "/\\ ")
	})
	return v
}

// RuleBinding is an applicable rule resolved for a language.
type RuleBinding struct {
	ID     string
	Plugin string
	Rule   domain.Rule
}

type ruleEntry struct {
	id        string
	plugin    string
	languages []domain.Language
	rule      domain.Rule
}

type formatterEntry struct {
	plugin    string
	language  domain.Language
	formatter domain.Formatter
}

type processorEntry struct {
	plugin    string
	processor domain.Processor
}

// Registry owns registered plugin artifacts until they are unregistered.
// A rule id resolves to at most one rule at any instant.
type Registry struct {
	mu         sync.RWMutex
	plugins    map[string]*domain.Plugin
	rules      []ruleEntry
	formatters []formatterEntry
	processors map[string][]processorEntry // per extension, built-in first and latest plugin last
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		plugins:    make(map[string]*domain.Plugin),
		processors: make(map[string][]processorEntry),
	}
}

// RegisterPlugin validates p and records its artifacts under namespaced ids ("name/rule").
// Registering a name that is already present replaces every artifact of the previous registration.
func (r *Registry) RegisterPlugin(p *domain.Plugin) error {
	if err := validatePlugin(p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(p.Name)

	ids := make([]string, 0, len(p.Rules))
	for id := range p.Rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		r.rules = append(r.rules, ruleEntry{
			id:        p.Name + "/" + id,
			plugin:    p.Name,
			languages: slices.Clone(p.Languages),
			rule:      p.Rules[id],
		})
	}

	langs := make([]domain.Language, 0, len(p.Formatters))
	for lang := range p.Formatters {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	for _, lang := range langs {
		r.formatters = append(r.formatters, formatterEntry{plugin: p.Name, language: lang, formatter: p.Formatters[lang]})
	}

	for ext, proc := range p.Processors {
		ext = strings.ToLower(ext)
		r.processors[ext] = append(r.processors[ext], processorEntry{plugin: p.Name, processor: proc})
	}

	r.plugins[p.Name] = p
	return nil
}

func validatePlugin(p *domain.Plugin) error {
	if p == nil {
		return zerr.With(domain.ErrInvalidPlugin, "reason", "nil plugin")
	}
	if err := pluginValidate.Struct(p); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidPlugin.Error()), "plugin", p.Name)
	}
	for id, rule := range p.Rules {
		if err := pluginValidate.Struct(rule); err != nil {
			return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrInvalidPlugin.Error()), "plugin", p.Name), "rule", id)
		}
	}
	return nil
}

// UnregisterPlugin removes every artifact contributed by the named plugin. Unknown names are a no-op.
func (r *Registry) UnregisterPlugin(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(name)
}

func (r *Registry) unregisterLocked(name string) {
	if _, ok := r.plugins[name]; !ok {
		return
	}
	r.rules = slices.DeleteFunc(r.rules, func(e ruleEntry) bool { return e.plugin == name })
	r.formatters = slices.DeleteFunc(r.formatters, func(e formatterEntry) bool { return e.plugin == name })
	for ext, stack := range r.processors {
		stack = slices.DeleteFunc(stack, func(e processorEntry) bool { return e.plugin == name })
		if len(stack) == 0 {
			delete(r.processors, ext)
			continue
		}
		r.processors[ext] = stack
	}
	delete(r.plugins, name)
}

// RegisterBuiltinRule records a rule shipped with polish under its bare id.
func (r *Registry) RegisterBuiltinRule(id string, languages []domain.Language, rule domain.Rule) error {
	if id == "" || strings.Contains(id, "/") || rule.Create == nil {
		return zerr.With(domain.ErrInvalidPlugin, "rule", id)
	}
	for _, lang := range languages {
		if !lang.IsSupported() {
			return zerr.With(zerr.With(domain.ErrUnsupportedLanguage, "language", string(lang)), "rule", id)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.rules {
		if e.id == id {
			return zerr.With(domain.ErrInvalidPlugin, "duplicate_rule", id)
		}
	}
	r.rules = append(r.rules, ruleEntry{id: id, languages: slices.Clone(languages), rule: rule})
	return nil
}

// RegisterBuiltinFormatter records the fallback formatter for a language.
func (r *Registry) RegisterBuiltinFormatter(lang domain.Language, f domain.Formatter) error {
	if !lang.IsSupported() {
		return zerr.With(domain.ErrUnsupportedLanguage, "language", string(lang))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters = slices.DeleteFunc(r.formatters, func(e formatterEntry) bool {
		return e.plugin == "" && e.language == lang
	})
	r.formatters = append(r.formatters, formatterEntry{language: lang, formatter: f})
	return nil
}

// RegisterBuiltinProcessor records the fallback processor for ext, replacing an earlier built-in one.
// Plugin processors for ext take precedence while their plugin is registered.
func (r *Registry) RegisterBuiltinProcessor(ext string, p domain.Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ext = strings.ToLower(ext)
	stack := slices.DeleteFunc(r.processors[ext], func(e processorEntry) bool { return e.plugin == "" })
	r.processors[ext] = slices.Insert(stack, 0, processorEntry{processor: p})
}

// RulesForLanguage returns the rules applicable to lang in registration order.
func (r *Registry) RulesForLanguage(lang domain.Language) []RuleBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []RuleBinding
	for _, e := range r.rules {
		if slices.Contains(e.languages, lang) {
			out = append(out, RuleBinding{ID: e.id, Plugin: e.plugin, Rule: e.rule})
		}
	}
	return out
}

// Rule looks up a rule by id.
func (r *Registry) Rule(id string) (domain.RuleInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.rules {
		if e.id == id {
			return domain.RuleInfo{ID: e.id, Plugin: e.plugin, Languages: slices.Clone(e.languages), Meta: e.rule.Meta}, true
		}
	}
	return domain.RuleInfo{}, false
}

// Rules lists every registered rule in registration order.
func (r *Registry) Rules() []domain.RuleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.RuleInfo, 0, len(r.rules))
	for _, e := range r.rules {
		out = append(out, domain.RuleInfo{ID: e.id, Plugin: e.plugin, Languages: slices.Clone(e.languages), Meta: e.rule.Meta})
	}
	return out
}

// Formatter returns the formatter a plugin registered for lang. An empty plugin name selects the built-in one.
func (r *Registry) Formatter(plugin string, lang domain.Language) (domain.Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.formatters {
		if e.plugin == plugin && e.language == lang {
			return e.formatter, true
		}
	}
	return nil, false
}

// FormattersForLanguage returns every formatter for lang, most recently registered plugin first
// and the built-in formatter last.
func (r *Registry) FormattersForLanguage(lang domain.Language) []domain.Formatter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Formatter
	var builtin domain.Formatter
	for i := len(r.formatters) - 1; i >= 0; i-- {
		e := r.formatters[i]
		if e.language != lang {
			continue
		}
		if e.plugin == "" {
			builtin = e.formatter
			continue
		}
		out = append(out, e.formatter)
	}
	if builtin != nil {
		out = append(out, builtin)
	}
	return out
}

// FormatterBinding is the formatter selected for a language plus its origin.
type FormatterBinding struct {
	Plugin    string
	Version   string
	Formatter domain.Formatter
}

// PreferredFormatter returns the formatter used for lang: the most recently registered plugin
// formatter, else the built-in one.
func (r *Registry) PreferredFormatter(lang domain.Language) (FormatterBinding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var builtin *formatterEntry
	for i := len(r.formatters) - 1; i >= 0; i-- {
		e := r.formatters[i]
		if e.language != lang {
			continue
		}
		if e.plugin == "" {
			builtin = &r.formatters[i]
			continue
		}
		return FormatterBinding{Plugin: e.plugin, Version: r.plugins[e.plugin].Version, Formatter: e.formatter}, true
	}
	if builtin != nil {
		return FormatterBinding{Version: "builtin", Formatter: builtin.formatter}, true
	}
	return FormatterBinding{}, false
}

// Processor returns the processor for ext: the most recently registered plugin processor,
// else the built-in one.
func (r *Registry) Processor(ext string) (domain.Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stack := r.processors[strings.ToLower(ext)]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1].processor, true
}

// Plugins returns the names of the registered plugins, sorted.
func (r *Registry) Plugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Severity resolves the configured severity of ruleID for lang.
// Unset and unrecognised settings resolve to warning, never to error.
func (r *Registry) Severity(ruleID string, lang domain.Language, cfg *domain.Config) domain.Severity {
	setting, ok := lookupSetting(ruleID, lang, cfg)
	if !ok {
		return domain.SeverityWarning
	}
	return domain.ParseSeverity(setting.Level)
}

// Options returns the configured options of ruleID for lang, never nil.
func (r *Registry) Options(ruleID string, lang domain.Language, cfg *domain.Config) map[string]any {
	setting, ok := lookupSetting(ruleID, lang, cfg)
	if !ok || setting.Options == nil {
		return map[string]any{}
	}
	return setting.Options
}

func lookupSetting(ruleID string, lang domain.Language, cfg *domain.Config) (domain.RuleSetting, bool) {
	if cfg == nil {
		return domain.RuleSetting{}, false
	}
	lc, ok := cfg.Languages[lang]
	if !ok {
		return domain.RuleSetting{}, false
	}
	setting, ok := lc.Rules[ruleID]
	return setting, ok
}

// Fingerprint identifies the rule set applicable to lang: sorted rule ids with their plugin versions.
// It changes whenever a plugin contributing to lang is added, removed or upgraded.
func (r *Registry) Fingerprint(lang domain.Language) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, e := range r.rules {
		if !slices.Contains(e.languages, lang) {
			continue
		}
		version := "builtin"
		if p, ok := r.plugins[e.plugin]; ok {
			version = p.Version
		}
		out = append(out, e.id+"@"+version)
	}
	slices.Sort(out)
	return out
}
