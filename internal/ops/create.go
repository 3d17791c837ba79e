package ops

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rbessler/inkwell/internal/db"
	"github.com/rbessler/inkwell/internal/entry"
	"github.com/rbessler/inkwell/internal/errors"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Title       string
	Author      *string
	Category    string
	Status      *string // default: Draft
	Content     string
	Tags        []string
	MediaType   *string
	MediaURL    *string
	IsLocked    bool
	PublishDate *int64
}

// Create validates and stores a new entry, then invalidates the list
// keys its appearance makes stale. The store assigns id and timestamps.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entry.Entry, error) {
	id, err := newEntryID()
	if err != nil {
		return nil, err
	}

	status := entry.StatusDraft
	if input.Status != nil && *input.Status != "" {
		status = entry.Status(*input.Status)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().Unix()
	e := &entry.Entry{
		ID:          id,
		Title:       strings.TrimSpace(input.Title),
		Author:      input.Author,
		Category:    entry.Category(input.Category),
		Status:      status,
		Content:     input.Content,
		Tags:        tags,
		MediaType:   input.MediaType,
		MediaURL:    input.MediaURL,
		IsLocked:    input.IsLocked,
		PublishDate: input.PublishDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Validation runs before any store call.
	if err := entry.Validate(e); err != nil {
		return nil, err
	}

	if err := db.Insert(ctx, s.db, e); err != nil {
		return nil, err
	}

	s.invalidateWrite(e.ID, e.Category)
	s.log.Info("entry created", "id", e.ID, "category", e.Category)

	return e, nil
}

// newEntryID mints a ULID for a fresh entry.
func newEntryID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", errors.NewInternal(err)
	}
	return id.String(), nil
}
