package ops

import (
	"context"
	"strings"

	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
	"github.com/rbessler/inkwell/internal/errors"
)

// UpdateInput contains parameters for the Update operation.
// Nil fields are left unchanged (partial-merge semantics).
type UpdateInput struct {
	ID string

	Title       *string
	Author      *string
	Category    *string
	Status      *string
	Content     *string
	Tags        *[]string
	MediaType   *string
	MediaURL    *string
	IsLocked    *bool
	PublishDate *int64
}

// Update merges the provided fields into the stored entry and persists
// the result. Because the category may change, the list keys of both
// the pre-update and post-update category are invalidated; leaving the
// old category's list stale was a known hazard of invalidating only the
// new one.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*entry.Entry, error) {
	if err := entry.ValidateID(input.ID); err != nil {
		return nil, err
	}

	if !input.hasChanges() {
		return nil, errors.NewValidation("at least one editable field must be provided")
	}

	// Fetch the pre-image; also captures the old category.
	e, err := db.GetByID(ctx, s.db, input.ID)
	if err != nil {
		return nil, err
	}
	previousCategory := e.Category

	if input.Title != nil {
		e.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		e.Author = input.Author
	}
	if input.Category != nil {
		e.Category = entry.Category(*input.Category)
	}
	if input.Status != nil {
		e.Status = entry.Status(*input.Status)
	}
	if input.Content != nil {
		e.Content = *input.Content
	}
	if input.Tags != nil {
		e.Tags = *input.Tags
	}
	if input.MediaType != nil {
		e.MediaType = input.MediaType
	}
	if input.MediaURL != nil {
		e.MediaURL = input.MediaURL
	}
	if input.IsLocked != nil {
		e.IsLocked = *input.IsLocked
	}
	if input.PublishDate != nil {
		e.PublishDate = input.PublishDate
	}

	// The merged record must still satisfy the schema.
	if err := entry.Validate(e); err != nil {
		return nil, err
	}

	if err := db.UpdateByID(ctx, s.db, e); err != nil {
		return nil, err
	}

	s.invalidateWrite(e.ID, previousCategory, e.Category)
	s.log.Info("entry updated", "id", e.ID, "category", e.Category)

	return e, nil
}

func (in UpdateInput) hasChanges() bool {
	return in.Title != nil || in.Author != nil || in.Category != nil ||
		in.Status != nil || in.Content != nil || in.Tags != nil ||
		in.MediaType != nil || in.MediaURL != nil || in.IsLocked != nil ||
		in.PublishDate != nil
}
