package ops

import (
	"context"

	"github.com/rbessler/inkwell/internal/cache"
	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
	"github.com/rbessler/inkwell/internal/errors"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	ID string
	// Category optionally narrows the lookup: an entry stored under a
	// different category reads as not found.
	Category *string
}

// Get retrieves a single entry by id, cache-aside. The id is validated
// before any cache or store access; a malformed id is a validation
// failure, not a miss. Single entries are cached solely by id, so the
// category filter is applied to the fetched entry rather than the key.
func (s *Service) Get(ctx context.Context, input GetInput) (*entry.Entry, error) {
	if err := entry.ValidateID(input.ID); err != nil {
		return nil, err
	}

	category, err := parseCategoryFilter(input.Category)
	if err != nil {
		return nil, err
	}

	key := cache.EntryKey(input.ID)

	if cached, ok := s.cache.GetEntry(key); ok {
		return filterCategory(&cached, category)
	}

	e, err := db.GetByID(ctx, s.db, input.ID)
	if err != nil {
		return nil, err
	}

	s.cache.SetEntry(key, *e)
	return filterCategory(e, category)
}

// filterCategory reports an entry under the wrong category as absent.
func filterCategory(e *entry.Entry, category *entry.Category) (*entry.Entry, error) {
	if category != nil && e.Category != *category {
		return nil, errors.NewNotFound(e.ID)
	}
	return e, nil
}
