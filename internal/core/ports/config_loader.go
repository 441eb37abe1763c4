package ports

import "go.trai.ch/polish/internal/core/domain"

// ConfigLoader defines the interface for loading the polish configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration for the given working directory.
	// When path is empty, polish.yaml is searched for from cwd upwards.
	// A missing file yields domain.DefaultConfig rooted at cwd.
	Load(cwd, path string) (*domain.Config, error)
}
