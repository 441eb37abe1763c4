package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polish/internal/adapters/report"
	"go.trai.ch/polish/internal/core/domain"
)

func sampleResults() []domain.LintResult {
	results := []domain.LintResult{
		{
			FilePath: "a.css",
			Diagnostics: []domain.Diagnostic{
				{
					RuleID:   "no-duplicate-properties",
					Severity: domain.SeverityError,
					Message:  `Duplicate property "color".`,
					Location: domain.Location{Start: domain.Position{Line: 2, Column: 3}},
				},
				{
					RuleID:   "no-empty-blocks",
					Severity: domain.SeverityWarning,
					Message:  "Unexpected empty block.",
					Location: domain.Location{Start: domain.Position{Line: 5, Column: 1}},
					Fix:      &domain.Fix{Range: [2]int{40, 44}},
				},
			},
		},
		{FilePath: "b.html", Diagnostics: []domain.Diagnostic{}},
		{
			FilePath: "c.js",
			Diagnostics: []domain.Diagnostic{
				{
					RuleID:   "eqeqeq",
					Severity: domain.SeverityWarning,
					Message:  "Expected '===' and instead saw '=='.",
					Location: domain.Location{Start: domain.Position{Line: 10, Column: 12}},
				},
			},
			Failures: []domain.RuleFailure{{RuleID: "no-var", Reason: "boom"}},
		},
	}
	for i := range results {
		results[i].Tally()
	}
	return results
}

func TestStylish(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.Stylish{}.Report(&buf, sampleResults()))

	g := goldie.New(t)
	g.Assert(t, "stylish", buf.Bytes())
}

func TestStylish_Clean(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.Stylish{}.Report(&buf, []domain.LintResult{{FilePath: "ok.css"}}))
	assert.Equal(t, "✓ No problems found\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.JSON{}.Report(&buf, sampleResults()))

	var decoded []domain.LintResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, 1, decoded[0].ErrorCount)
	assert.Equal(t, 1, decoded[0].FixableWarningCount)
	assert.Equal(t, "no-var", decoded[2].Failures[0].RuleID)

	buf.Reset()
	require.NoError(t, report.JSON{}.Report(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCatalog(t *testing.T) {
	c := report.NewCatalog(report.Stylish{}, report.JSON{})
	assert.Equal(t, []string{"json", "stylish"}, c.Names())

	r, err := c.Get("json")
	require.NoError(t, err)
	assert.Equal(t, "json", r.Name())

	_, err = c.Get("junit")
	require.ErrorContains(t, err, domain.ErrUnknownReporter.Error())
}
