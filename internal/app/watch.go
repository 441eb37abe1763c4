package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/polish/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
)

// Watch lints the matching files once, then again after every debounced batch of changes under
// the configured root, until ctx is done. Unchanged files are served from the cache.
// onResults is never called concurrently.
func (e *Engine) Watch(
	ctx context.Context,
	w ports.Watcher,
	patterns []string,
	window time.Duration,
	onResults func([]domain.LintResult, error),
) error {
	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		results, err := e.LintFiles(ctx, patterns)
		if errors.Is(err, context.Canceled) {
			return
		}
		onResults(results, err)
	}

	run()

	cfg := e.Config()
	if err := w.Start(ctx, cfg.Root); err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	d := watcher.NewDebouncer(window, func(paths []string) {
		e.logger.Debug("files changed", "count", len(paths))
		run()
	})
	for ev := range w.Events() {
		if ev.Language == "" || !cfg.LanguageEnabled(ev.Language) {
			continue
		}
		d.Add(ev.Path)
	}
	return nil
}
