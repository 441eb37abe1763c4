package ports

import (
	"context"

	"go.trai.ch/polish/internal/core/domain"
)

// Workspace discovers, loads and writes source files.
//
//go:generate mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// Discover expands include patterns under root, drops paths matching exclude
	// and returns the remaining files with a recognised extension, sorted.
	Discover(ctx context.Context, root string, include, exclude []string) ([]string, error)

	// Load reads the given files. Files that cannot be read are omitted from the result.
	Load(ctx context.Context, paths []string) ([]domain.SourceFile, error)

	// Write replaces the content of path.
	Write(path, content string) error
}
