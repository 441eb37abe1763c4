package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polish/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polish/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
)

// NodeID is the unique identifier for the cache factory Graft node.
const NodeID graft.ID = "engine.cache"

// Factory opens a Cache for a resolved cache configuration.
// A disabled configuration yields a memory-only cache.
type Factory func(cfg domain.CacheConfig) (*Cache, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (Factory, error) {
			opener, err := graft.Dep[ports.EntryStoreOpener](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(opener, log), nil
		},
	})
}

// NewFactory returns a Factory opening persistent tiers through opener.
func NewFactory(opener ports.EntryStoreOpener, log ports.Logger) Factory {
	return func(cfg domain.CacheConfig) (*Cache, error) {
		var store ports.EntryStore
		if cfg.Enabled {
			s, err := opener.Open(cfg.Dir)
			if err != nil {
				return nil, err
			}
			store = s
		}
		return New(cfg.Capacity, store, WithLogger(log))
	}
}
