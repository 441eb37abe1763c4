package script

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polish/internal/core/ports"
)

// NodeID is the unique identifier for the plugin loader Graft node.
const NodeID graft.ID = "adapter.plugin_loader"

func init() {
	graft.Register(graft.Node[ports.PluginLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PluginLoader, error) {
			return NewLoader(), nil
		},
	})
}
