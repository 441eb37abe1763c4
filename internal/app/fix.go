package app

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/engine/batch"
	"go.trai.ch/zerr"
)

// maxFixPasses bounds how often a file is re-linted after fixes were applied.
const maxFixPasses = 10

// FixResult is the outcome of FixFiles.
type FixResult struct {
	// Results holds the diagnostics that remain after fixing.
	Results []domain.LintResult
	// Fixed lists the files that were rewritten.
	Fixed []string
	// Applied counts the fixes written across all files.
	Applied int
}

type fixOutcome struct {
	result  domain.LintResult
	applied int
}

// FixFiles lints the matching files, applies every non-overlapping fix and writes the changed files.
// A file is re-linted after each pass so fixes uncovered by earlier ones are applied too.
func (e *Engine) FixFiles(ctx context.Context, patterns []string) (*FixResult, error) {
	ctx, span := e.tracer.Start(ctx, "fix")
	defer span.End()

	files, err := e.collect(ctx, patterns)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("files", len(files))

	cfg := e.Config()
	outcomes, err := batch.Map(ctx, files, batch.Options{Parallel: cfg.Parallel, Workers: cfg.WorkerCount()},
		e.fixFile,
		func(f domain.SourceFile, err error) {
			e.logger.Debug("skipping file", "path", f.Path, "error", err.Error())
		},
	)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "fix batch interrupted")
	}

	out := &FixResult{Results: make([]domain.LintResult, 0, len(outcomes))}
	for _, o := range outcomes {
		out.Results = append(out.Results, o.result)
		if o.applied > 0 {
			out.Fixed = append(out.Fixed, o.result.FilePath)
			out.Applied += o.applied
		}
	}
	span.SetAttribute("applied", out.Applied)
	return out, nil
}

func (e *Engine) fixFile(ctx context.Context, file domain.SourceFile) (fixOutcome, error) {
	r, err := e.linter.LintFile(ctx, file)
	if err != nil {
		return fixOutcome{}, err
	}

	current := file
	applied := 0
	for range maxFixPasses {
		next, n := ApplyFixes(current.Content, r.Diagnostics)
		if n == 0 {
			break
		}
		applied += n
		current.Content = next
		current.Size = int64(len(next))

		if r, err = e.linter.Relint(ctx, current); err != nil {
			return fixOutcome{}, err
		}
	}

	if applied > 0 {
		if err := e.workspace.Write(file.Path, current.Content); err != nil {
			return fixOutcome{}, err
		}
	}
	return fixOutcome{result: *r, applied: applied}, nil
}

// ApplyFixes applies the fixes attached to diags in offset order and returns the new content
// with the number of applied fixes. A fix overlapping an earlier one, or pointing outside
// content, is left for a later pass.
func ApplyFixes(content string, diags []domain.Diagnostic) (string, int) {
	var fixes []domain.Fix
	for _, d := range diags {
		if d.Fix != nil {
			fixes = append(fixes, *d.Fix)
		}
	}
	if len(fixes) == 0 {
		return content, 0
	}
	slices.SortStableFunc(fixes, func(a, b domain.Fix) int {
		return cmp.Or(cmp.Compare(a.Range[0], b.Range[0]), cmp.Compare(a.Range[1], b.Range[1]))
	})

	var b strings.Builder
	b.Grow(len(content))
	last, applied := 0, 0
	for _, f := range fixes {
		start, end := f.Range[0], f.Range[1]
		if start < last || start > end || end > len(content) {
			continue
		}
		b.WriteString(content[last:start])
		b.WriteString(f.Text)
		last = end
		applied++
	}
	if applied == 0 {
		return content, 0
	}
	b.WriteString(content[last:])
	return b.String(), applied
}
