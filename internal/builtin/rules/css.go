package rules

import (
	"strings"

	"go.trai.ch/polish/internal/core/domain"
)

// NoDuplicateProperties reports a property declared twice in one block.
var NoDuplicateProperties = domain.Rule{
	Meta: domain.RuleMeta{
		Type: domain.RuleTypeProblem,
		Docs: domain.RuleDocs{
			Description: "Disallow duplicate properties within a block",
			Recommended: true,
		},
	},
	Create: func(ctx domain.RuleContext) domain.Handlers {
		return domain.Handlers{
			"block": func(block domain.Node) error {
				seen := map[string]bool{}
				for _, decl := range childrenOfKind(block, "declaration") {
					prop := firstChildOfKind(decl, "property_name")
					if prop == nil {
						continue
					}
					name := strings.ToLower(prop.Text())
					if seen[name] {
						ctx.Report(domain.Report{Node: decl, Message: "duplicate property \"" + name + "\""})
						continue
					}
					seen[name] = true
				}
				return nil
			},
		}
	},
}

// NoEmptyBlocks reports blocks without declarations, nested rules or comments.
var NoEmptyBlocks = domain.Rule{
	Meta: domain.RuleMeta{
		Type: domain.RuleTypeSuggestion,
		Docs: domain.RuleDocs{Description: "Disallow empty blocks"},
	},
	Create: func(ctx domain.RuleContext) domain.Handlers {
		return domain.Handlers{
			"block": func(block domain.Node) error {
				for _, c := range block.Children() {
					if c.Named() {
						return nil
					}
				}
				ctx.Report(domain.Report{Node: block, Message: "unexpected empty block"})
				return nil
			},
		}
	},
}
