package rules

import (
	"go.trai.ch/polish/internal/core/domain"
)

// NoDebugger reports debugger statements and removes them when fixing.
var NoDebugger = domain.Rule{
	Meta: domain.RuleMeta{
		Type:    domain.RuleTypeProblem,
		Fixable: domain.FixCode,
		Docs: domain.RuleDocs{
			Description: "Disallow debugger statements",
			Recommended: true,
		},
	},
	Create: func(ctx domain.RuleContext) domain.Handlers {
		return domain.Handlers{
			"debugger_statement": func(n domain.Node) error {
				ctx.Report(domain.Report{
					Node:    n,
					Message: "unexpected debugger statement",
					Fix:     &domain.Fix{Range: [2]int{n.StartByte(), n.EndByte()}},
				})
				return nil
			},
		}
	},
}

// NoVar reports var declarations and rewrites them to let.
var NoVar = domain.Rule{
	Meta: domain.RuleMeta{
		Type:    domain.RuleTypeSuggestion,
		Fixable: domain.FixCode,
		Docs:    domain.RuleDocs{Description: "Require let or const instead of var"},
	},
	Create: func(ctx domain.RuleContext) domain.Handlers {
		return domain.Handlers{
			"variable_declaration": func(n domain.Node) error {
				kw := firstChildOfKind(n, "var")
				if kw == nil {
					return nil
				}
				ctx.Report(domain.Report{
					Node:    n,
					Message: "unexpected var, use let or const instead",
					Fix:     &domain.Fix{Range: [2]int{kw.StartByte(), kw.EndByte()}, Text: "let"},
				})
				return nil
			},
		}
	},
}

var strictOperators = map[string]string{"==": "===", "!=": "!=="}

// Eqeqeq reports loose equality operators and suggests the strict form.
// With the option null: "ignore", comparisons against a null literal are allowed.
var Eqeqeq = domain.Rule{
	Meta: domain.RuleMeta{
		Type:           domain.RuleTypeSuggestion,
		HasSuggestions: true,
		Options:        []string{"null"},
		Docs:           domain.RuleDocs{Description: "Require === and !=="},
	},
	Create: func(ctx domain.RuleContext) domain.Handlers {
		ignoreNull := ctx.Options()["null"] == "ignore"
		return domain.Handlers{
			"binary_expression": func(n domain.Node) error {
				var op domain.Node
				nullOperand := false
				for _, c := range n.Children() {
					if _, ok := strictOperators[c.Kind()]; ok && !c.Named() {
						op = c
					}
					if c.Kind() == "null" {
						nullOperand = true
					}
				}
				if op == nil || (ignoreNull && nullOperand) {
					return nil
				}
				strict := strictOperators[op.Kind()]
				ctx.Report(domain.Report{
					Node:    n,
					Message: "expected '" + strict + "' and instead saw '" + op.Kind() + "'",
					Suggestions: []domain.Suggestion{{
						Message: "use '" + strict + "'",
						Fix:     domain.Fix{Range: [2]int{op.StartByte(), op.EndByte()}, Text: strict},
					}},
				})
				return nil
			},
		}
	},
}
