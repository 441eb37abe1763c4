// Package batch runs per-file work in bounded, strictly ordered chunks.
package batch

import (
	"context"

	"go.trai.ch/polish/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// Options selects how a batch is executed.
type Options struct {
	// Parallel enables chunked concurrent execution.
	Parallel bool
	// Workers is both the chunk size and the concurrency bound. Non-positive values use domain.DefaultWorkers.
	Workers int
}

// Chunks splits items into consecutive slices of at most size elements.
func Chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = domain.DefaultWorkers
	}
	var out [][]T
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// Map applies fn to every item and returns the successful results in input order.
//
// Sequentially, items run one after another. In parallel mode with more than one item, items are
// split into chunks of Workers; chunks run strictly one after another and the items of a chunk run
// concurrently. Items for which fn fails are passed to skip and left out of the result.
// The context is checked before every chunk (before every item sequentially). A failure caused by
// cancellation is not a skip: Map stops and returns the results of the finished chunks with ctx.Err().
func Map[T, R any](
	ctx context.Context,
	items []T,
	opts Options,
	fn func(context.Context, T) (R, error),
	skip func(T, error),
) ([]R, error) {
	results := make([]R, 0, len(items))

	if !opts.Parallel || len(items) <= 1 {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			r, err := fn(ctx, item)
			if err != nil && ctx.Err() != nil {
				return results, ctx.Err()
			}
			if err != nil {
				report(skip, item, err)
				continue
			}
			results = append(results, r)
		}
		return results, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = domain.DefaultWorkers
	}

	for _, chunk := range Chunks(items, workers) {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		out := make([]R, len(chunk))
		errs := make([]error, len(chunk))

		var g errgroup.Group
		g.SetLimit(workers)
		for i, item := range chunk {
			g.Go(func() error {
				r, err := fn(ctx, item)
				if err != nil && ctx.Err() != nil {
					return ctx.Err()
				}
				out[i], errs[i] = r, err
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return results, err
		}

		for i, item := range chunk {
			if errs[i] != nil {
				report(skip, item, errs[i])
				continue
			}
			results = append(results, out[i])
		}
	}
	return results, nil
}

func report[T any](skip func(T, error), item T, err error) {
	if skip != nil {
		skip(item, err)
	}
}
