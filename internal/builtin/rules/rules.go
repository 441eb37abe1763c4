// Package rules contains the lint rules shipped with polish.
package rules

import (
	"strings"

	"go.trai.ch/polish/internal/core/domain"
)

// Builtin is a rule together with its bare id and the languages it applies to.
type Builtin struct {
	ID        string
	Languages []domain.Language
	Rule      domain.Rule
}

var scripts = []domain.Language{domain.LanguageJavaScript, domain.LanguageTypeScript}

// All returns every built-in rule in registration order.
func All() []Builtin {
	return []Builtin{
		{ID: "require-alt", Languages: []domain.Language{domain.LanguageHTML}, Rule: RequireAlt},
		{ID: "no-duplicate-attributes", Languages: []domain.Language{domain.LanguageHTML}, Rule: NoDuplicateAttributes},
		{ID: "no-duplicate-properties", Languages: []domain.Language{domain.LanguageCSS}, Rule: NoDuplicateProperties},
		{ID: "no-empty-blocks", Languages: []domain.Language{domain.LanguageCSS}, Rule: NoEmptyBlocks},
		{ID: "no-debugger", Languages: scripts, Rule: NoDebugger},
		{ID: "no-var", Languages: scripts, Rule: NoVar},
		{ID: "eqeqeq", Languages: scripts, Rule: Eqeqeq},
		{ID: "no-duplicate-keys", Languages: []domain.Language{domain.LanguageYAML}, Rule: NoDuplicateKeys},
	}
}

func childrenOfKind(n domain.Node, kinds ...string) []domain.Node {
	var out []domain.Node
	for _, c := range n.Children() {
		for _, k := range kinds {
			if c.Kind() == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func firstChildOfKind(n domain.Node, kind string) domain.Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
