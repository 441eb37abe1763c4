package domain

import (
	"maps"
	"time"
)

// PerformanceMetrics are the counters and durations of one engine instance.
type PerformanceMetrics struct {
	FilesProcessed int                      `json:"filesProcessed"`
	LinesProcessed int                      `json:"linesProcessed"`
	CacheHits      int                      `json:"cacheHits"`
	CacheMisses    int                      `json:"cacheMisses"`
	LintDuration   time.Duration            `json:"lintDuration"`
	FormatDuration time.Duration            `json:"formatDuration"`
	RuleExecutions map[string]int           `json:"ruleExecutions"`
	RuleDurations  map[string]time.Duration `json:"ruleDurations"`
	RuleFailures   int                      `json:"ruleFailures"`
}

// NewPerformanceMetrics returns zeroed metrics with initialized maps.
func NewPerformanceMetrics() PerformanceMetrics {
	return PerformanceMetrics{
		RuleExecutions: map[string]int{},
		RuleDurations:  map[string]time.Duration{},
	}
}

// Clone returns a deep copy.
func (m PerformanceMetrics) Clone() PerformanceMetrics {
	out := m
	out.RuleExecutions = maps.Clone(m.RuleExecutions)
	out.RuleDurations = maps.Clone(m.RuleDurations)
	if out.RuleExecutions == nil {
		out.RuleExecutions = map[string]int{}
	}
	if out.RuleDurations == nil {
		out.RuleDurations = map[string]time.Duration{}
	}
	return out
}

// Combine merges metrics of two subsystems that processed the same files.
// Counters and durations are summed; FilesProcessed and LinesProcessed take the maximum.
func Combine(a, b PerformanceMetrics) PerformanceMetrics {
	out := a.Clone()
	out.FilesProcessed = max(a.FilesProcessed, b.FilesProcessed)
	out.LinesProcessed = max(a.LinesProcessed, b.LinesProcessed)
	out.CacheHits += b.CacheHits
	out.CacheMisses += b.CacheMisses
	out.LintDuration += b.LintDuration
	out.FormatDuration += b.FormatDuration
	out.RuleFailures += b.RuleFailures
	for id, n := range b.RuleExecutions {
		out.RuleExecutions[id] += n
	}
	for id, d := range b.RuleDurations {
		out.RuleDurations[id] += d
	}
	return out
}
