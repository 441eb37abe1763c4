package domain

// RuleType classifies what a rule looks for.
type RuleType string

const (
	// RuleTypeProblem flags code that is likely wrong.
	RuleTypeProblem RuleType = "problem"
	// RuleTypeSuggestion flags code that could be written better.
	RuleTypeSuggestion RuleType = "suggestion"
	// RuleTypeLayout flags whitespace and formatting concerns.
	RuleTypeLayout RuleType = "layout"
)

// FixKind describes the fixes a rule may attach to its diagnostics.
type FixKind string

const (
	// FixNone means the rule never attaches fixes.
	FixNone FixKind = ""
	// FixCode means fixes change code.
	FixCode FixKind = "code"
	// FixWhitespace means fixes only touch whitespace.
	FixWhitespace FixKind = "whitespace"
)

// RuleDocs is the human-facing documentation of a rule.
type RuleDocs struct {
	Description string
	URL         string
	Recommended bool
}

// Deprecation marks a rule as superseded.
type Deprecation struct {
	Message    string
	ReplacedBy []string
}

// RuleMeta describes a rule.
type RuleMeta struct {
	Type           RuleType `validate:"omitempty,oneof=problem suggestion layout"`
	Docs           RuleDocs
	Fixable        FixKind `validate:"omitempty,oneof=code whitespace"`
	HasSuggestions bool
	// Options lists the option keys the rule accepts. Nil accepts anything.
	Options    []string
	Deprecated *Deprecation
}

// Handler is invoked for every node whose kind it was registered for.
type Handler func(Node) error

// Handlers maps node kinds to the handler that inspects them.
type Handlers map[string]Handler

// Rule is a stateless lint check. Create is called once per file and may keep per-file state in its closure.
type Rule struct {
	Meta   RuleMeta
	Create func(RuleContext) Handlers `validate:"required"`
}

// Report is what a rule hands to RuleContext.Report.
// When Location is nil, the location is taken from Node.
type Report struct {
	Node        Node
	Location    *Location
	Message     string
	Fix         *Fix
	Suggestions []Suggestion
}

// RuleContext is the facade a single rule execution talks to.
type RuleContext interface {
	// ID returns the resolved rule id.
	ID() string
	// Report records a diagnostic at the rule's configured severity.
	Report(Report)
	// Source returns the text being linted.
	Source() string
	// FilePath returns the path of the file being linted.
	FilePath() string
	// Cwd returns the working directory of the run.
	Cwd() string
	// Language returns the language of the file being linted.
	Language() Language
	// Options returns the configured rule options, never nil.
	Options() map[string]any
}

// FormatOptions are the per-language formatting settings.
type FormatOptions struct {
	IndentSize   int  `json:"indentSize" yaml:"indentSize"`
	UseTabs      bool `json:"useTabs" yaml:"useTabs"`
	FinalNewline bool `json:"finalNewline" yaml:"finalNewline"`
}

// Formatter is a deterministic, idempotent per-language transform.
type Formatter interface {
	Format(source string, opts FormatOptions) (string, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(source string, opts FormatOptions) (string, error)

// Format calls f.
func (f FormatterFunc) Format(source string, opts FormatOptions) (string, error) {
	return f(source, opts)
}

// Fragment is a lintable piece of a larger file.
// Filename is a virtual name whose extension selects the fragment's language.
type Fragment struct {
	Text     string
	Filename string
}

// Processor splits a file into lintable fragments and maps their diagnostics back.
type Processor interface {
	Preprocess(text, filename string) ([]Fragment, error)
	Postprocess(diagnostics [][]Diagnostic, filename string) []Diagnostic
	SupportsAutofix() bool
}

// Plugin bundles rules, formatters and processors under one name.
type Plugin struct {
	Name       string                 `validate:"required,excludesall=/ "`
	Version    string                 `validate:"required"`
	Languages  []Language             `validate:"dive,language"`
	Rules      map[string]Rule        `validate:"dive,keys,required,excludesall=/,endkeys"`
	Formatters map[Language]Formatter `validate:"dive,keys,language,endkeys,required"`
	Processors map[string]Processor   `validate:"dive,keys,extension,endkeys,required"`
}

// SupportsLanguage reports whether the plugin declares lang.
func (p *Plugin) SupportsLanguage(lang Language) bool {
	for _, l := range p.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// RuleInfo is a read-only view of a registered rule.
type RuleInfo struct {
	ID        string
	Plugin    string
	Languages []Language
	Meta      RuleMeta
}
