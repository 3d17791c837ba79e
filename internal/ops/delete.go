package ops

import (
	"context"

	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Delete removes an entry permanently and invalidates its keys. The
// pre-image is fetched first so the right category list is dropped.
func (s *Service) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := entry.ValidateID(input.ID); err != nil {
		return nil, err
	}

	e, err := db.GetByID(ctx, s.db, input.ID)
	if err != nil {
		return nil, err
	}

	if err := db.DeleteByID(ctx, s.db, input.ID); err != nil {
		return nil, err
	}

	s.invalidateWrite(e.ID, e.Category)
	s.log.Info("entry deleted", "id", e.ID, "category", e.Category)

	return &DeleteOutput{Success: true, ID: e.ID}, nil
}
