package ops

import (
	"context"

	"github.com/rbessler/inkwell/internal/cache"
	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	// Category optionally restricts the list. Must name a valid
	// category when set.
	Category *string
}

// List returns entries sorted by recency (newest first), cache-aside:
// a cache hit returns immediately, a miss scans the store and populates
// the list key for the next caller.
func (s *Service) List(ctx context.Context, input ListInput) ([]entry.Entry, error) {
	category, err := parseCategoryFilter(input.Category)
	if err != nil {
		return nil, err
	}

	key := cache.ListAllKey()
	if category != nil {
		key = cache.ListCategoryKey(*category)
	}

	if cached, ok := s.cache.GetList(key); ok {
		return cached, nil
	}

	entries, err := db.List(ctx, s.db, category)
	if err != nil {
		return nil, err
	}

	s.cache.SetList(key, entries)
	return entries, nil
}
