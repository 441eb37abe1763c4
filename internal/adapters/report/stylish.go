// Package report renders lint results for humans and machines.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/ui/output"
	"go.trai.ch/polish/internal/ui/style"
)

// Stylish prints diagnostics grouped by file with aligned columns.
type Stylish struct{}

// Name implements ports.Reporter.
func (Stylish) Name() string { return "stylish" }

// Report implements ports.Reporter.
func (Stylish) Report(w io.Writer, results []domain.LintResult) error {
	st := style.New(output.Renderer(w))

	var b strings.Builder
	var errs, warns, fixErrs, fixWarns int
	for i := range results {
		r := &results[i]
		errs += r.ErrorCount
		warns += r.WarningCount
		fixErrs += r.FixableErrorCount
		fixWarns += r.FixableWarningCount
		if len(r.Diagnostics) == 0 && len(r.Failures) == 0 {
			continue
		}

		b.WriteString(st.Path.Render(r.FilePath))
		b.WriteByte('\n')

		posWidth, msgWidth := 0, 0
		for _, d := range r.Diagnostics {
			posWidth = max(posWidth, len(position(d)))
			msgWidth = max(msgWidth, len(d.Message))
		}
		for _, d := range r.Diagnostics {
			pos := position(d)
			sev := st.Warning.Render("warning")
			if d.Severity == domain.SeverityError {
				sev = st.Error.Render("error") + "  "
			}
			b.WriteString("  ")
			b.WriteString(st.Pos.Render(pos))
			b.WriteString(pad(pos, posWidth))
			b.WriteString("  ")
			b.WriteString(sev)
			b.WriteString("  ")
			b.WriteString(d.Message)
			b.WriteString(pad(d.Message, msgWidth))
			b.WriteString("  ")
			b.WriteString(st.RuleID.Render(d.RuleID))
			b.WriteByte('\n')
		}
		for _, f := range r.Failures {
			b.WriteString("  ")
			b.WriteString(st.Warning.Render(style.Warning + " " + f.RuleID + " failed: " + f.Reason))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	if errs+warns == 0 {
		b.WriteString(st.Success.Render(style.Check + " No problems found"))
		b.WriteByte('\n')
	} else {
		summary := fmt.Sprintf("%s %s (%s, %s)", style.Cross,
			plural(errs+warns, "problem"), plural(errs, "error"), plural(warns, "warning"))
		b.WriteString(st.Summary.Render(summary))
		b.WriteByte('\n')
		if fixErrs+fixWarns > 0 {
			b.WriteString(st.Fixable.Render(fmt.Sprintf("  %s and %s potentially fixable with `polish fix`.",
				plural(fixErrs, "error"), plural(fixWarns, "warning"))))
			b.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func position(d domain.Diagnostic) string {
	return strconv.Itoa(d.Location.Start.Line) + ":" + strconv.Itoa(d.Location.Start.Column)
}

func pad(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat(" ", n)
	}
	return ""
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
