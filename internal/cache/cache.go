// Package cache is the cache-aside layer in front of the entry store.
// Values are typed in-process snapshots held by sturdyc clients; every
// key lives in a client with a finite TTL, so nothing is cached forever.
// The cache is never authoritative: the store remains the source of
// truth and a cached value may be stale for at most one TTL window.
package cache

import (
	"time"

	"github.com/viccon/sturdyc"

	"github.com/rbessler/inkwell/internal/entry"
)

// Config holds the cache configuration.
type Config struct {
	// Capacity is the maximum number of entries per client. Must be > 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent
	// access. Must be > 0.
	NumShards int

	// ListTTL applies to list-class keys (all entries, per-category).
	// Lists are invalidated on every write, so a short TTL is enough.
	ListTTL time.Duration

	// EntryTTL applies to single-entry keys.
	EntryTTL time.Duration

	// EvictionPercentage is the share of entries evicted when a client
	// reaches capacity. Must be between 1 and 100.
	EvictionPercentage int
}

// DefaultConfig returns a Config with the design defaults.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		ListTTL:            120 * time.Second,
		EntryTTL:           300 * time.Second,
		EvictionPercentage: 10,
	}
}

// Validate checks whether the configuration values are usable.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.ListTTL <= 0 {
		return &ConfigError{Field: "ListTTL", Message: "must be greater than 0"}
	}
	if c.EntryTTL <= 0 {
		return &ConfigError{Field: "EntryTTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "cache config error in field " + e.Field + ": " + e.Message
}

// Cache is an explicit handle, constructed once and injected into the
// orchestrator. List-class and entry-class keys live in separate sturdyc
// clients so each key class gets its own TTL.
//
// A nil *Cache is valid: every read misses and every write is a no-op.
// That is the degraded mode of a cache that could not be constructed; it
// costs performance, never correctness.
type Cache struct {
	lists   *sturdyc.Client[[]entry.Entry]
	entries *sturdyc.Client[entry.Entry]
}

// New constructs a Cache from cfg.
func New(cfg Config) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Cache{
		lists:   sturdyc.New[[]entry.Entry](cfg.Capacity, cfg.NumShards, cfg.ListTTL, cfg.EvictionPercentage),
		entries: sturdyc.New[entry.Entry](cfg.Capacity, cfg.NumShards, cfg.EntryTTL, cfg.EvictionPercentage),
	}, nil
}

// GetList returns the cached entry list for key, or a miss.
func (c *Cache) GetList(key string) ([]entry.Entry, bool) {
	if c == nil {
		return nil, false
	}
	return c.lists.Get(key)
}

// SetList populates the list for key with the list-class TTL.
func (c *Cache) SetList(key string, entries []entry.Entry) {
	if c == nil {
		return
	}
	c.lists.Set(key, entries)
}

// GetEntry returns the cached entry for key, or a miss.
func (c *Cache) GetEntry(key string) (entry.Entry, bool) {
	if c == nil {
		return entry.Entry{}, false
	}
	return c.entries.Get(key)
}

// SetEntry populates the entry for key with the entry-class TTL.
func (c *Cache) SetEntry(key string, e entry.Entry) {
	if c == nil {
		return
	}
	c.entries.Set(key, e)
}

// Invalidate removes the given keys from both key classes. Deleting an
// absent key is a no-op, so callers can invalidate broadly.
func (c *Cache) Invalidate(keys ...string) {
	if c == nil {
		return
	}
	for _, key := range keys {
		c.lists.Delete(key)
		c.entries.Delete(key)
	}
}

// Size reports the number of cached values across both key classes.
func (c *Cache) Size() int {
	if c == nil {
		return 0
	}
	return c.lists.Size() + c.entries.Size()
}
