package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/polish/internal/adapters/metrics"
	"go.trai.ch/polish/internal/core/domain"
)

func TestExporter_Export(t *testing.T) {
	m := domain.NewPerformanceMetrics()
	m.FilesProcessed = 4
	m.LinesProcessed = 120
	m.CacheHits = 1
	m.CacheMisses = 3
	m.LintDuration = 1500 * time.Millisecond
	m.RuleFailures = 2
	m.RuleExecutions["require-alt"] = 3
	m.RuleDurations["require-alt"] = 250 * time.Millisecond

	path := filepath.Join(t.TempDir(), "out", "polish.prom")
	require.NoError(t, metrics.NewExporter().Export(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "polish_files_processed 4\n")
	assert.Contains(t, out, "polish_lines_processed 120\n")
	assert.Contains(t, out, "polish_cache_hits 1\n")
	assert.Contains(t, out, "polish_cache_misses 3\n")
	assert.Contains(t, out, "polish_lint_duration_seconds 1.5\n")
	assert.Contains(t, out, "polish_rule_failures 2\n")
	assert.Contains(t, out, `polish_rule_executions{rule="require-alt"} 3`)
	assert.Contains(t, out, `polish_rule_duration_seconds{rule="require-alt"} 0.25`)
}

func TestExporter_RepeatedExportsDoNotAccumulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polish.prom")
	e := metrics.NewExporter()

	m := domain.NewPerformanceMetrics()
	m.CacheHits = 5
	require.NoError(t, e.Export(path, m))
	m.CacheHits = 2
	require.NoError(t, e.Export(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "polish_cache_hits 2\n")
	assert.NotContains(t, string(data), "polish_cache_hits 5")
}

func TestExporter_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, domain.FilePerm))

	err := metrics.NewExporter().Export(filepath.Join(blocker, "polish.prom"), domain.NewPerformanceMetrics())
	require.ErrorContains(t, err, domain.ErrExportFailed.Error())
}
