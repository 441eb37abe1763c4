package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polish/internal/core/ports"
)

// NodeID is the unique identifier for the entry store opener Graft node.
const NodeID graft.ID = "adapter.entry_store"

func init() {
	graft.Register(graft.Node[ports.EntryStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EntryStoreOpener, error) {
			return Opener{}, nil
		},
	})
}
