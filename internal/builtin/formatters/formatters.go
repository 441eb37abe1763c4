// Package formatters contains the formatters shipped with polish.
package formatters

import (
	"strings"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
)

// All returns the built-in formatter of every language. parser may be nil, in which case
// the whitespace formatters do not protect literals.
func All(parser ports.Parser) map[domain.Language]domain.Formatter {
	ws := func(lang domain.Language, tabs bool) Whitespace {
		return Whitespace{AllowTabs: tabs, Language: lang, Parser: parser}
	}
	return map[domain.Language]domain.Formatter{
		domain.LanguageCSS:        CSS{},
		domain.LanguageHTML:       ws(domain.LanguageHTML, true),
		domain.LanguageJavaScript: ws(domain.LanguageJavaScript, true),
		domain.LanguageTypeScript: ws(domain.LanguageTypeScript, true),
		domain.LanguageYAML:       ws(domain.LanguageYAML, false),
		domain.LanguageMarkdown:   Whitespace{HardBreaks: true},
	}
}

func indent(depth int, opts domain.FormatOptions) string {
	if depth <= 0 {
		return ""
	}
	if opts.UseTabs {
		return strings.Repeat("\t", depth)
	}
	size := opts.IndentSize
	if size <= 0 {
		size = domain.DefaultFormatOptions().IndentSize
	}
	return strings.Repeat(" ", depth*size)
}

func finish(lines []string, opts domain.FormatOptions) string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	out := strings.Join(lines, "\n")
	if opts.FinalNewline {
		out += "\n"
	}
	return out
}
