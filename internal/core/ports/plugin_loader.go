package ports

import (
	"context"

	"go.trai.ch/polish/internal/core/domain"
)

// PluginLoader turns a configured plugin reference into a registrable plugin.
//
//go:generate mockgen -source=plugin_loader.go -destination=mocks/mock_plugin_loader.go -package=mocks
type PluginLoader interface {
	Load(ctx context.Context, ref domain.PluginRef) (*domain.Plugin, error)
}
