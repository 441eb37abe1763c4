package commands

import (
	"context"
	"os"

	"go.trai.ch/polish/internal/app"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
)

// FromComponents adapts the wired application components to the Application the CLI drives.
func FromComponents(c *app.Components) Application {
	return &componentsApp{c: c}
}

type componentsApp struct {
	c *app.Components
}

func (a *componentsApp) Open(ctx context.Context, opts app.OpenOptions) (Session, error) {
	if opts.Cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		opts.Cwd = cwd
	}

	engine, err := a.c.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return engine, nil
}

func (a *componentsApp) Reporter(name string) (ports.Reporter, error) {
	return a.c.Reporters.Get(name)
}

func (a *componentsApp) ExportMetrics(path string, metrics domain.PerformanceMetrics) error {
	return a.c.Metrics.Export(path, metrics)
}

func (a *componentsApp) NewWatcher() (ports.Watcher, error) {
	return a.c.Watchers()
}
