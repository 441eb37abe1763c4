package linter

import (
	"slices"

	"go.trai.ch/polish/internal/core/domain"
)

// ruleContext is the RuleContext of one rule running over one file.
type ruleContext struct {
	id       string
	meta     domain.RuleMeta
	severity domain.Severity
	source   string
	path     string
	cwd      string
	language domain.Language
	options  map[string]any

	diagnostics []domain.Diagnostic
}

var _ domain.RuleContext = (*ruleContext)(nil)

func (c *ruleContext) ID() string { return c.id }
func (c *ruleContext) Source() string { return c.source }
func (c *ruleContext) FilePath() string { return c.path }
func (c *ruleContext) Cwd() string { return c.cwd }
func (c *ruleContext) Language() domain.Language { return c.language }
func (c *ruleContext) Options() map[string]any { return c.options }

// Report records a diagnostic at the rule's severity.
// Fixes are only kept for fixable rules and suggestions only for rules that declare them.
func (c *ruleContext) Report(r domain.Report) {
	d := domain.Diagnostic{
		RuleID:   c.id,
		Severity: c.severity,
		Message:  r.Message,
		Location: locate(r),
	}
	if r.Fix != nil && c.meta.Fixable != domain.FixNone {
		fix := *r.Fix
		d.Fix = &fix
	}
	if c.meta.HasSuggestions && len(r.Suggestions) > 0 {
		d.Suggestions = slices.Clone(r.Suggestions)
	}
	c.diagnostics = append(c.diagnostics, d)
}

func locate(r domain.Report) domain.Location {
	if r.Location != nil {
		loc := *r.Location
		if loc.End != nil {
			end := *loc.End
			loc.End = &end
		}
		return loc
	}
	if r.Node != nil {
		end := r.Node.End()
		return domain.Location{Start: r.Node.Start(), End: &end}
	}
	return domain.Location{Start: domain.Position{Line: 1, Column: 1}}
}
