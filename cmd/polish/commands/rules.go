package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/polish/internal/app"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/ui/output"
	"go.trai.ch/polish/internal/ui/style"
)

func (c *CLI) newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "rules [language]",
		Short:     "List the available rules and their configured severity",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: languageNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var lang domain.Language
			if len(args) == 1 {
				lang = domain.Language(strings.ToLower(args[0]))
			}

			return c.withSession(cmd, func(_ context.Context, s Session) error {
				rules, err := s.Rules(lang)
				if err != nil {
					return err
				}
				printRules(cmd, rules)
				return nil
			})
		},
	}
}

func languageNames() []string {
	langs := domain.SupportedLanguages()
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		names = append(names, l.String())
	}
	return names
}

func printRules(cmd *cobra.Command, rules []app.RuleStatus) {
	w := cmd.OutOrStdout()
	r := output.Renderer(w)
	st := style.New(r)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("RULE", "TYPE", "SEVERITY", "FIXABLE", "NOTES").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.NewStyle().Bold(true)
			}
			if col == 0 {
				return r.NewStyle()
			}
			return st.RuleID
		})

	for _, rule := range rules {
		t.Row(
			rule.ID,
			string(rule.Meta.Type),
			severityLabel(st, rule.Severity),
			string(rule.Meta.Fixable),
			notes(rule.RuleInfo),
		)
	}

	_, _ = fmt.Fprintln(w, t.String())
	_, _ = fmt.Fprintf(w, "%d rules\n", len(rules))
}

func severityLabel(st style.Styles, sev domain.Severity) string {
	switch sev {
	case domain.SeverityError:
		return st.Error.Render(sev.String())
	case domain.SeverityWarning:
		return st.Warning.Render(sev.String())
	default:
		return sev.String()
	}
}

func notes(info domain.RuleInfo) string {
	var parts []string
	if info.Plugin != "" {
		parts = append(parts, "plugin "+info.Plugin)
	}
	if d := info.Meta.Deprecated; d != nil {
		if len(d.ReplacedBy) > 0 {
			parts = append(parts, "deprecated, use "+strings.Join(d.ReplacedBy, ", "))
		} else {
			parts = append(parts, "deprecated")
		}
	}
	return strings.Join(parts, "; ")
}
