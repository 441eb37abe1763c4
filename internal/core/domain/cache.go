package domain

import (
	"strings"
	"time"
)

// CacheSchemaVersion is stamped on every cache entry. Entries carrying any other version are ignored.
const CacheSchemaVersion = "1"

// CacheMaxAge is how long a cache entry stays usable.
const CacheMaxAge = 24 * time.Hour

// DefaultCacheCapacity bounds the in-memory cache tier when the configuration does not.
const DefaultCacheCapacity = 1000

// OperationKind namespaces cache keys by the operation that produced the entry.
type OperationKind string

const (
	// OperationLint caches lint results.
	OperationLint OperationKind = "lint"
	// OperationFormat caches format results.
	OperationFormat OperationKind = "format"
)

// NewCacheKey builds the key "kind:path:hash".
func NewCacheKey(kind OperationKind, path, hash string) string {
	var b strings.Builder
	b.Grow(len(kind) + len(path) + len(hash) + 2)
	b.WriteString(string(kind))
	b.WriteByte(':')
	b.WriteString(path)
	b.WriteByte(':')
	b.WriteString(hash)
	return b.String()
}

// CacheEntry is a cached operation result.
type CacheEntry struct {
	Hash      string        `json:"hash"`
	Lint      *LintResult   `json:"lint,omitzero"`
	Format    *FormatResult `json:"format,omitzero"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
}

// Fresh reports whether the entry was produced by the running schema and is younger than CacheMaxAge at now.
func (e *CacheEntry) Fresh(now time.Time) bool {
	if e == nil || e.Version != CacheSchemaVersion {
		return false
	}
	return now.Sub(e.Timestamp) < CacheMaxAge
}
