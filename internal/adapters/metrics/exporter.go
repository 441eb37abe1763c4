// Package metrics exports engine metrics as a Prometheus textfile.
package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "polish"

// Exporter implements ports.MetricsExporter.
// Every export builds a private registry so snapshots never accumulate across runs.
type Exporter struct{}

var _ ports.MetricsExporter = (*Exporter)(nil)

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes m to path in the Prometheus text exposition format.
func (e *Exporter) Export(path string, m domain.PerformanceMetrics) error {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
		g.Set(v)
		reg.MustRegister(g)
	}
	gauge("files_processed", "Files processed by the last run.", float64(m.FilesProcessed))
	gauge("lines_processed", "Lines processed by the last run.", float64(m.LinesProcessed))
	gauge("cache_hits", "Results served from the cache.", float64(m.CacheHits))
	gauge("cache_misses", "Results computed because the cache had no usable entry.", float64(m.CacheMisses))
	gauge("lint_duration_seconds", "Time spent linting cache misses.", m.LintDuration.Seconds())
	gauge("format_duration_seconds", "Time spent formatting cache misses.", m.FormatDuration.Seconds())
	gauge("rule_failures", "Rule executions that raised instead of completing.", float64(m.RuleFailures))

	executions := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "rule",
		Name:      "executions",
		Help:      "Executions per rule.",
	}, []string{"rule"})
	durations := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "rule",
		Name:      "duration_seconds",
		Help:      "Accumulated execution time per rule.",
	}, []string{"rule"})
	reg.MustRegister(executions, durations)

	for id, n := range m.RuleExecutions {
		executions.WithLabelValues(id).Set(float64(n))
	}
	for id, d := range m.RuleDurations {
		durations.WithLabelValues(id).Set(d.Seconds())
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", path)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportFailed.Error()), "path", path)
	}
	return nil
}
