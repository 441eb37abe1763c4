package report

import (
	"encoding/json"
	"io"

	"go.trai.ch/polish/internal/core/domain"
)

// JSON prints the results as an indented JSON array.
type JSON struct{}

// Name implements ports.Reporter.
func (JSON) Name() string { return "json" }

// Report implements ports.Reporter.
func (JSON) Report(w io.Writer, results []domain.LintResult) error {
	if results == nil {
		results = []domain.LintResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
