// Package ops is the query orchestrator: the public operations over
// entries, composing the store, the cache-aside layer, the text
// normalizer, and the fuzzy matcher. Writes go store-then-invalidate;
// reads go cache-then-store-then-populate. The system guarantees bounded
// staleness (at most one TTL window after a write), not linearizability.
package ops

import (
	"database/sql"
	"io"
	"log/slog"

	"github.com/rbessler/inkwell/internal/cache"
	"github.com/rbessler/inkwell/internal/config"
	"github.com/rbessler/inkwell/internal/entry"
	"github.com/rbessler/inkwell/internal/errors"
	"github.com/rbessler/inkwell/internal/fuzzy"
)

// Service exposes the entry operations. The cache handle is injected at
// construction and may be nil, in which case every read goes straight to
// the store.
type Service struct {
	db    *sql.DB
	cache *cache.Cache
	cfg   *config.Config
	log   *slog.Logger
}

// New constructs a Service. cfg and logger may be nil; defaults apply.
func New(database *sql.DB, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		db:    database,
		cache: c,
		cfg:   cfg,
		log:   logger,
	}
}

// matcherConfig maps the service configuration onto the fuzzy defaults.
func (s *Service) matcherConfig() fuzzy.Config {
	cfg := fuzzy.DefaultConfig()
	if s.cfg.SearchThreshold > 0 {
		cfg.Threshold = s.cfg.SearchThreshold
	}
	if s.cfg.SearchMinMatchLength > 0 {
		cfg.MinMatchCharLength = s.cfg.SearchMinMatchLength
	}
	return cfg
}

// searchLimit returns the result cap for search.
func (s *Service) searchLimit() int {
	if s.cfg.SearchLimit > 0 {
		return s.cfg.SearchLimit
	}
	return 20
}

// parseCategoryFilter validates an optional category filter. nil means
// no filter; an unknown category is a validation failure, caught before
// any cache or store access.
func parseCategoryFilter(raw *string) (*entry.Category, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	c := entry.Category(*raw)
	if !entry.ValidCategory(c) {
		return nil, errors.NewValidation("unknown category: " + *raw)
	}
	return &c, nil
}

// invalidateWrite drops every cache key a write to id under the given
// categories could have left stale. A failed invalidation costs
// freshness within one TTL window, never availability.
func (s *Service) invalidateWrite(id string, categories ...entry.Category) {
	s.cache.Invalidate(cache.WriteKeys(id, categories...)...)
}
