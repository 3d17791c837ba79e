package ops

import (
	"context"

	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
)

// CategoryCount is the number of entries in one category.
type CategoryCount struct {
	Category entry.Category `json:"category"`
	Count    int            `json:"count"`
}

// Counts reports per-category entry totals for every known category,
// including zeroes. Counts read the store directly; they change with
// every write and are cheap to compute.
func (s *Service) Counts(ctx context.Context) ([]CategoryCount, error) {
	counts, err := db.CountByCategory(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryCount, 0, len(entry.Categories))
	for _, c := range entry.Categories {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out, nil
}
