// Package style provides shared styling primitives: brand colors, icons and
// the lipgloss styles used by reporters and the log handler.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)

// Styles holds the lipgloss styles of one renderer.
type Styles struct {
	Path    lipgloss.Style
	Pos     lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	RuleID  lipgloss.Style
	Summary lipgloss.Style
	Success lipgloss.Style
	Fixable lipgloss.Style
}

// New builds the styles bound to r, so color output follows r's profile.
func New(r *lipgloss.Renderer) Styles {
	return Styles{
		Path:    r.NewStyle().Bold(true).Underline(true),
		Pos:     r.NewStyle().Foreground(Slate),
		Error:   r.NewStyle().Foreground(Red),
		Warning: r.NewStyle().Foreground(Yellow),
		RuleID:  r.NewStyle().Foreground(Slate),
		Summary: r.NewStyle().Bold(true).Foreground(Red),
		Success: r.NewStyle().Bold(true).Foreground(Green),
		Fixable: r.NewStyle().Foreground(Iris),
	}
}
