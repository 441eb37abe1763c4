// Package domain holds the polish model: languages, configuration, plugins, rules and diagnostics.
package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Language identifies a source language handled by polish.
type Language string

const (
	// LanguageHTML is HTML markup.
	LanguageHTML Language = "html"
	// LanguageCSS is CSS stylesheets.
	LanguageCSS Language = "css"
	// LanguageJavaScript is JavaScript, including JSX.
	LanguageJavaScript Language = "javascript"
	// LanguageTypeScript is TypeScript.
	LanguageTypeScript Language = "typescript"
	// LanguageYAML is YAML documents.
	LanguageYAML Language = "yaml"
	// LanguageMarkdown is Markdown prose. It has no parsing front-end and is linted through a processor.
	LanguageMarkdown Language = "markdown"
)

// extensionLanguages maps lower-cased file extensions to languages.
var extensionLanguages = map[string]Language{
	".html":     LanguageHTML,
	".htm":      LanguageHTML,
	".css":      LanguageCSS,
	".js":       LanguageJavaScript,
	".mjs":      LanguageJavaScript,
	".cjs":      LanguageJavaScript,
	".jsx":      LanguageJavaScript,
	".ts":       LanguageTypeScript,
	".mts":      LanguageTypeScript,
	".cts":      LanguageTypeScript,
	".yaml":     LanguageYAML,
	".yml":      LanguageYAML,
	".md":       LanguageMarkdown,
	".markdown": LanguageMarkdown,
}

// SupportedLanguages returns every language polish knows about, sorted by name.
func SupportedLanguages() []Language {
	return []Language{
		LanguageCSS,
		LanguageHTML,
		LanguageJavaScript,
		LanguageMarkdown,
		LanguageTypeScript,
		LanguageYAML,
	}
}

// IsSupported reports whether l is one of the supported languages.
func (l Language) IsSupported() bool {
	return slices.Contains(SupportedLanguages(), l)
}

// String returns the language name.
func (l Language) String() string {
	return string(l)
}

// Extensions returns the file extensions recognised for the language, sorted.
func (l Language) Extensions() []string {
	var exts []string
	for ext, lang := range extensionLanguages {
		if lang == l {
			exts = append(exts, ext)
		}
	}
	slices.Sort(exts)
	return exts
}

// LanguageForPath detects the language of a file from its extension.
func LanguageForPath(path string) (Language, bool) {
	lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// RecognizedExtensions returns every extension mapped to a language, sorted.
func RecognizedExtensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
