package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polish/internal/adapters/treesitter" //nolint:depguard // Wired in app layer
	"go.trai.ch/polish/internal/core/ports"
)

// NodeID is the unique identifier for the registry Graft node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{treesitter.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			parser, err := graft.Dep[ports.Parser](ctx)
			if err != nil {
				return nil, err
			}
			return NewWithBuiltins(parser)
		},
	})
}
