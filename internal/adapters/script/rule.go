package script

import (
	"context"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/zerr"
)

func newRule(id string, dto RuleDTO, source string) domain.Rule {
	meta := domain.RuleMeta{
		Type: domain.RuleType(dto.Type),
		Docs: domain.RuleDocs{
			Description: dto.Description,
			URL:         dto.URL,
			Recommended: dto.Recommended,
		},
		Options: dto.Options,
	}
	if dto.Deprecated != "" {
		meta.Deprecated = &domain.Deprecation{Message: dto.Deprecated}
	}

	kinds := append([]string(nil), dto.Kinds...)
	return domain.Rule{
		Meta: meta,
		Create: func(ctx domain.RuleContext) domain.Handlers {
			h := make(domain.Handlers, len(kinds))
			for _, kind := range kinds {
				h[kind] = func(n domain.Node) error {
					return runRule(id, source, ctx, n)
				}
			}
			return h
		},
	}
}

// runRule evaluates the rule script for one node. The script sees the globals
// node, options, file, language and report(message).
func runRule(id, source string, rc domain.RuleContext, n domain.Node) error {
	report := object.NewBuiltin("report", func(_ context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("report", 1, len(args))
		}
		msg, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("report: message must be a string, got %s", args[0].Type())
		}
		rc.Report(domain.Report{Node: n, Message: msg.Value()})
		return object.Nil
	})

	result, err := risor.Eval(context.Background(), source,
		risor.WithGlobal("node", nodeObject(n)),
		risor.WithGlobal("options", toObject(rc.Options())),
		risor.WithGlobal("file", object.NewString(rc.FilePath())),
		risor.WithGlobal("language", object.NewString(string(rc.Language()))),
		risor.WithGlobal("report", report),
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRuleFailed.Error()), "rule", id)
	}
	if e, ok := result.(*object.Error); ok {
		return zerr.With(zerr.With(domain.ErrRuleFailed, "rule", id), "error", e.Inspect())
	}
	return nil
}
