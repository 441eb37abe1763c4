package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/polish/internal/core/ports"
)

// NodeID is the unique identifier for the tracer factory Graft node.
const NodeID graft.ID = "adapter.telemetry"

// Factory opens the tracer for a trace file. An empty path disables tracing.
type Factory func(path string) (ports.Tracer, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return NewFactory("polish"), nil
		},
	})
}

// NewFactory returns a Factory whose tracers use the given instrumentation name.
func NewFactory(name string) Factory {
	return func(path string) (ports.Tracer, error) {
		if path == "" {
			return NewNoOpTracer(), nil
		}
		return NewFileTracer(name, path)
	}
}
