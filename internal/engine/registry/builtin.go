package registry

import (
	"slices"

	"go.trai.ch/polish/internal/builtin/formatters"
	"go.trai.ch/polish/internal/builtin/processors"
	"go.trai.ch/polish/internal/builtin/rules"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
)

// NewWithBuiltins creates a Registry holding every rule, formatter and processor shipped with polish.
// parser lets the whitespace formatters keep literals intact; nil disables that.
func NewWithBuiltins(parser ports.Parser) (*Registry, error) {
	r := New()

	for _, b := range rules.All() {
		if err := r.RegisterBuiltinRule(b.ID, b.Languages, b.Rule); err != nil {
			return nil, zerr.Wrap(err, "failed to register built-in rule")
		}
	}

	all := formatters.All(parser)
	langs := make([]domain.Language, 0, len(all))
	for lang := range all {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	for _, lang := range langs {
		if err := r.RegisterBuiltinFormatter(lang, all[lang]); err != nil {
			return nil, zerr.Wrap(err, "failed to register built-in formatter")
		}
	}

	md := processors.NewMarkdown()
	for _, ext := range md.Extensions() {
		r.RegisterBuiltinProcessor(ext, md)
	}
	return r, nil
}
