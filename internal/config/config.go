package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration. TTLs are tunables, not
// contract: the only hard requirement downstream is that every cached
// key expires.
type Config struct {
	// ListTTLSeconds is the TTL for cached entry lists.
	ListTTLSeconds int `json:"list_ttl_seconds"`

	// EntryTTLSeconds is the TTL for cached single entries.
	EntryTTLSeconds int `json:"entry_ttl_seconds"`

	// CacheCapacity caps the number of values per cache key class.
	CacheCapacity int `json:"cache_capacity"`

	// CacheShards sets the shard count of the cache clients.
	CacheShards int `json:"cache_shards"`

	// SearchLimit is the maximum number of search results returned.
	SearchLimit int `json:"search_limit"`

	// SearchThreshold is the fuzzy acceptance threshold in [0, 1];
	// 0 requires exact matches, 1 matches anything.
	SearchThreshold float64 `json:"search_threshold"`

	// SearchMinMatchLength discards fuzzy matches shorter than this.
	SearchMinMatchLength int `json:"search_min_match_length"`

	// HTTPBind and HTTPPort locate the REST listener.
	HTTPBind string `json:"http_bind,omitempty"`
	HTTPPort int    `json:"http_port,omitempty"`

	// DBMaxOpenConns limits open database connections. 0 means the
	// sql.DB default. Set to 1 to serialize access under contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ListTTLSeconds:       120,
		EntryTTLSeconds:      300,
		CacheCapacity:        10000,
		CacheShards:          64,
		SearchLimit:          20,
		SearchThreshold:      0.35,
		SearchMinMatchLength: 2,
		HTTPBind:             "127.0.0.1",
		HTTPPort:             8080,
	}
}

// Load loads configuration from baseDir/config.json, merged over the
// defaults. Returns the defaults if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.inkwell.
func Load(baseDir string) (*Config, error) {
	loaded, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), loaded), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns a zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge overlays non-zero values of over onto base, returning a new
// config. Neither argument is mutated.
func Merge(base, over *Config) *Config {
	merged := *base
	if over == nil {
		return &merged
	}

	if over.ListTTLSeconds > 0 {
		merged.ListTTLSeconds = over.ListTTLSeconds
	}
	if over.EntryTTLSeconds > 0 {
		merged.EntryTTLSeconds = over.EntryTTLSeconds
	}
	if over.CacheCapacity > 0 {
		merged.CacheCapacity = over.CacheCapacity
	}
	if over.CacheShards > 0 {
		merged.CacheShards = over.CacheShards
	}
	if over.SearchLimit > 0 {
		merged.SearchLimit = over.SearchLimit
	}
	if over.SearchThreshold > 0 {
		merged.SearchThreshold = over.SearchThreshold
	}
	if over.SearchMinMatchLength > 0 {
		merged.SearchMinMatchLength = over.SearchMinMatchLength
	}
	if over.HTTPBind != "" {
		merged.HTTPBind = over.HTTPBind
	}
	if over.HTTPPort > 0 {
		merged.HTTPPort = over.HTTPPort
	}
	if over.DBMaxOpenConns > 0 {
		merged.DBMaxOpenConns = over.DBMaxOpenConns
	}
	if over.DBMaxIdleConns > 0 {
		merged.DBMaxIdleConns = over.DBMaxIdleConns
	}

	return &merged
}
