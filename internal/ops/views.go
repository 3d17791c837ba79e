package ops

import (
	"context"

	"github.com/rbessler/inkwell/internal/cache"
	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
)

// IncrementViews bumps an entry's read counter. The cached copy still
// carries the old count until its TTL, which is acceptable staleness for
// a vanity metric, but the entry key is dropped so the next read is
// exact.
func (s *Service) IncrementViews(ctx context.Context, id string) error {
	if err := entry.ValidateID(id); err != nil {
		return err
	}

	if err := db.IncrementViews(ctx, s.db, id); err != nil {
		return err
	}

	s.cache.Invalidate(cache.EntryKey(id))
	return nil
}
