package rules

import (
	"strings"

	"go.trai.ch/polish/internal/core/domain"
)

var tagKinds = []string{"start_tag", "self_closing_tag"}

func tagName(tag domain.Node) string {
	if name := firstChildOfKind(tag, "tag_name"); name != nil {
		return strings.ToLower(name.Text())
	}
	return ""
}

func attributeName(attr domain.Node) string {
	if name := firstChildOfKind(attr, "attribute_name"); name != nil {
		return strings.ToLower(name.Text())
	}
	return ""
}

// RequireAlt reports <img> elements without an alt attribute.
var RequireAlt = domain.Rule{
	Meta: domain.RuleMeta{
		Type: domain.RuleTypeProblem,
		Docs: domain.RuleDocs{
			Description: "Require alt text on img elements",
			Recommended: true,
		},
	},
	Create: func(ctx domain.RuleContext) domain.Handlers {
		check := func(tag domain.Node) error {
			if tagName(tag) != "img" {
				return nil
			}
			for _, attr := range childrenOfKind(tag, "attribute") {
				if attributeName(attr) == "alt" {
					return nil
				}
			}
			ctx.Report(domain.Report{Node: tag, Message: "img elements must have an alt attribute"})
			return nil
		}
		h := domain.Handlers{}
		for _, k := range tagKinds {
			h[k] = check
		}
		return h
	},
}

// NoDuplicateAttributes reports attributes repeated on the same tag.
var NoDuplicateAttributes = domain.Rule{
	Meta: domain.RuleMeta{
		Type: domain.RuleTypeProblem,
		Docs: domain.RuleDocs{
			Description: "Disallow duplicate attributes on a tag",
			Recommended: true,
		},
	},
	Create: func(ctx domain.RuleContext) domain.Handlers {
		check := func(tag domain.Node) error {
			seen := map[string]bool{}
			for _, attr := range childrenOfKind(tag, "attribute") {
				name := attributeName(attr)
				if name == "" {
					continue
				}
				if seen[name] {
					ctx.Report(domain.Report{Node: attr, Message: "duplicate attribute \"" + name + "\""})
					continue
				}
				seen[name] = true
			}
			return nil
		}
		h := domain.Handlers{}
		for _, k := range tagKinds {
			h[k] = check
		}
		return h
	},
}
