package report

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the reporter catalog Graft node.
const NodeID graft.ID = "adapter.report"

func init() {
	graft.Register(graft.Node[*Catalog]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Catalog, error) {
			return NewCatalog(Stylish{}, JSON{}), nil
		},
	})
}
