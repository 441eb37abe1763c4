package ports

import (
	"context"

	"go.trai.ch/polish/internal/core/domain"
)

// Parser is the per-language parsing front-end.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type Parser interface {
	// Supports reports whether lang has a grammar.
	Supports(lang domain.Language) bool

	// Parse builds the node tree of source.
	Parse(ctx context.Context, lang domain.Language, source []byte) (domain.Node, error)
}
