package domain

import "strings"

// Severity is the configured importance of a rule's violations.
type Severity int

const (
	// SeverityOff suppresses a rule entirely.
	SeverityOff Severity = iota
	// SeverityWarning reports violations without failing a check.
	SeverityWarning
	// SeverityError reports violations that fail a check.
	SeverityError
)

// String returns the configuration spelling of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityError:
		return "error"
	default:
		return "warn"
	}
}

// ParseSeverity converts a configured severity string.
// Unset and unrecognised values resolve to SeverityWarning, never to SeverityError.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError
	case "off":
		return SeverityOff
	default:
		return SeverityWarning
	}
}

// Position is a 1-based line and column inside a source file.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is the span a diagnostic points at.
type Location struct {
	Start Position  `json:"start"`
	End   *Position `json:"end,omitempty"`
}

// Fix replaces the bytes in [Range[0], Range[1]) with Text.
type Fix struct {
	Range [2]int `json:"range"`
	Text  string `json:"text"`
}

// Suggestion is an optional, user-approved fix.
type Suggestion struct {
	Message string `json:"message"`
	Fix     Fix    `json:"fix"`
}

// Diagnostic is a single issue reported by a rule.
type Diagnostic struct {
	RuleID      string       `json:"ruleId"`
	Severity    Severity     `json:"severity"`
	Message     string       `json:"message"`
	Location    Location     `json:"location"`
	Fix         *Fix         `json:"fix,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// RuleFailure records that a rule raised instead of completing for one file.
type RuleFailure struct {
	RuleID string `json:"ruleId"`
	Reason string `json:"reason"`
}

// LintResult holds the diagnostics for one file and their aggregate counts.
type LintResult struct {
	FilePath            string        `json:"filePath"`
	Diagnostics         []Diagnostic  `json:"diagnostics"`
	ErrorCount          int           `json:"errorCount"`
	WarningCount        int           `json:"warningCount"`
	FixableErrorCount   int           `json:"fixableErrorCount"`
	FixableWarningCount int           `json:"fixableWarningCount"`
	Failures            []RuleFailure `json:"failures,omitempty"`
	Cached              bool          `json:"-"`
}

// Tally recomputes the aggregate counts from the diagnostics.
func (r *LintResult) Tally() {
	r.ErrorCount, r.WarningCount = 0, 0
	r.FixableErrorCount, r.FixableWarningCount = 0, 0
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case SeverityError:
			r.ErrorCount++
			if d.Fix != nil {
				r.FixableErrorCount++
			}
		case SeverityWarning:
			r.WarningCount++
			if d.Fix != nil {
				r.FixableWarningCount++
			}
		}
	}
}

// FormatResult is the outcome of formatting one file.
type FormatResult struct {
	FilePath  string `json:"filePath"`
	Formatted string `json:"formatted"`
	Changed   bool   `json:"changed"`
	Cached    bool   `json:"-"`
}
