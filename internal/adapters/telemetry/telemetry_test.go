package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polish/internal/adapters/telemetry"
	"go.trai.ch/polish/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = (*telemetry.NoOpSpan)(nil)
}

func TestWriterTracer_ExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	tracer, err := telemetry.NewWriterTracer("polish-test", &buf)
	require.NoError(t, err)

	ctx, span := tracer.Start(context.Background(), "lint")
	span.SetAttribute("files", 3)
	span.SetAttribute("patterns", []string{"**/*.css"})
	span.RecordError(errors.New("boom"))
	n, err := span.Write([]byte("chunk done"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, child := tracer.Start(ctx, "lint.chunk")
	child.End()
	span.End()

	require.NoError(t, tracer.Shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"lint"`)
	assert.Contains(t, out, `"lint.chunk"`)
	assert.Contains(t, out, "files")
	assert.Contains(t, out, "chunk done")
	assert.Contains(t, out, "boom")
}

func TestFactory(t *testing.T) {
	factory := telemetry.NewFactory("polish-test")

	tracer, err := factory("")
	require.NoError(t, err)
	assert.IsType(t, &telemetry.NoOpTracer{}, tracer)

	path := filepath.Join(t.TempDir(), "traces", "run.jsonl")
	tracer, err = factory(path)
	require.NoError(t, err)
	_, span := tracer.Start(context.Background(), "format")
	span.End()
	require.NoError(t, tracer.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"format"`)
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	_, span := tracer.Start(context.Background(), "test-span")
	require.NotNil(t, span)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
	require.NoError(t, tracer.Shutdown(context.Background()))
}
