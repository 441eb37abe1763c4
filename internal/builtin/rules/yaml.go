package rules

import (
	"go.trai.ch/polish/internal/core/domain"
)

// NoDuplicateKeys reports keys repeated within one mapping.
var NoDuplicateKeys = domain.Rule{
	Meta: domain.RuleMeta{
		Type: domain.RuleTypeProblem,
		Docs: domain.RuleDocs{
			Description: "Disallow duplicate mapping keys",
			Recommended: true,
		},
	},
	Create: func(ctx domain.RuleContext) domain.Handlers {
		check := func(mapping domain.Node) error {
			seen := map[string]bool{}
			for _, pair := range childrenOfKind(mapping, "block_mapping_pair", "flow_pair") {
				children := pair.Children()
				if len(children) == 0 || !children[0].Named() {
					continue
				}
				key := unquote(children[0].Text())
				if seen[key] {
					ctx.Report(domain.Report{Node: children[0], Message: "duplicate key \"" + key + "\""})
					continue
				}
				seen[key] = true
			}
			return nil
		}
		return domain.Handlers{
			"block_mapping": check,
			"flow_mapping":  check,
		}
	},
}
