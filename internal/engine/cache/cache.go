// Package cache implements the two-tier content-addressed result cache.
package cache

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/polish/internal/core/domain"
	"go.trai.ch/polish/internal/core/ports"
	"go.trai.ch/zerr"
)

// Cache keeps recently produced results in a bounded in-memory tier backed by a persistent EntryStore.
//
// The in-memory tier evicts in insertion order: reads use Peek so they never refresh an entry,
// and the underlying cache performs evict-then-insert under a single lock.
type Cache struct {
	fast   *lru.Cache[string, *domain.CacheEntry]
	store  ports.EntryStore
	logger ports.Logger
	now    func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source used for stamping and freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithLogger reports swallowed persistent-tier failures at debug level.
func WithLogger(logger ports.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates a Cache holding at most capacity entries in memory.
// A nil store disables the persistent tier.
func New(capacity int, store ports.EntryStore, opts ...Option) (*Cache, error) {
	if capacity <= 0 {
		capacity = domain.DefaultCacheCapacity
	}
	fast, err := lru.New[string, *domain.CacheEntry](capacity)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create cache"), "capacity", capacity)
	}
	c := &Cache{
		fast:  fast,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the entry for key if either tier holds a usable one.
// Persistent hits are promoted into the in-memory tier.
func (c *Cache) Get(key string) (*domain.CacheEntry, bool) {
	now := c.now()

	if entry, ok := c.fast.Peek(key); ok {
		if entry.Fresh(now) {
			c.hits.Add(1)
			return entry, true
		}
		c.fast.Remove(key)
	}

	if c.store != nil {
		entry, err := c.store.Get(key)
		if err != nil {
			c.debug("cache read failed", "key", key, "error", err.Error())
		}
		if err == nil && entry.Fresh(now) {
			c.fast.Add(key, entry)
			c.hits.Add(1)
			return entry, true
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Set stamps entry with the schema version and the current time and writes it to both tiers.
// Persistent write failures are swallowed.
func (c *Cache) Set(key string, entry *domain.CacheEntry) {
	if entry == nil {
		return
	}
	stamped := *entry
	stamped.Version = domain.CacheSchemaVersion
	stamped.Timestamp = c.now()

	c.fast.Add(key, &stamped)

	if c.store != nil {
		if err := c.store.Put(key, &stamped); err != nil {
			c.debug("cache write failed", "key", key, "error", err.Error())
		}
	}
}

// EvictWorkingSet empties the in-memory tier only. Persisted entries stay available to later runs.
func (c *Cache) EvictWorkingSet() {
	c.fast.Purge()
}

// Purge empties both tiers.
func (c *Cache) Purge() error {
	c.fast.Purge()
	if c.store == nil {
		return nil
	}
	return c.store.Purge()
}

// Len returns the number of entries held in memory.
func (c *Cache) Len() int {
	return c.fast.Len()
}

// Keys returns the in-memory keys from oldest to newest insertion.
func (c *Cache) Keys() []string {
	return c.fast.Keys()
}

// Stats returns the number of hits and misses since creation.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
