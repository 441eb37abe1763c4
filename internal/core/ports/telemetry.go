package ports

import (
	"context"
	"io"

	"go.trai.ch/polish/internal/core/domain"
)

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
	// Shutdown flushes pending spans.
	Shutdown(ctx context.Context) error
}

// Span represents a unit of work.
type Span interface {
	io.Writer
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// MetricsExporter publishes engine metrics.
type MetricsExporter interface {
	// Export writes a snapshot of the metrics to path.
	Export(path string, metrics domain.PerformanceMetrics) error
}
