package app

import (
	"slices"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/zerr"
)

// RuleStatus is a registered rule with its configured severity.
type RuleStatus struct {
	domain.RuleInfo
	Severity domain.Severity
}

// Rules lists the rules applicable to lang with the severity the current configuration gives them.
// An empty lang lists every rule, resolving severity for the rule's first language.
func (e *Engine) Rules(lang domain.Language) ([]RuleStatus, error) {
	if lang != "" && !lang.IsSupported() {
		return nil, zerr.With(domain.ErrUnsupportedLanguage, "language", lang.String())
	}

	cfg := e.Config()
	var out []RuleStatus
	for _, info := range e.registry.Rules() {
		target := lang
		if target == "" {
			if len(info.Languages) == 0 {
				continue
			}
			target = info.Languages[0]
		} else if !slices.Contains(info.Languages, lang) {
			continue
		}
		out = append(out, RuleStatus{
			RuleInfo: info,
			Severity: e.registry.Severity(info.ID, target, cfg),
		})
	}
	return out, nil
}
