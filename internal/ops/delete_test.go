package ops

import (
	"context"
	"testing"

	"github.com/rbessler/inkwell/internal/errors"
)

func TestDelete(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	e := mustCreate(t, s, CreateInput{Title: "Ephemeral", Category: "Notes"})

	// Warm the caches the delete must clear.
	if _, err := s.Get(ctx, GetInput{ID: e.ID}); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := s.List(ctx, ListInput{Category: strPtr("Notes")}); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	out, err := s.Delete(ctx, DeleteInput{ID: e.ID})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !out.Success || out.ID != e.ID {
		t.Errorf("Delete output = %+v", out)
	}

	if _, err := s.Get(ctx, GetInput{ID: e.ID}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Get after delete = %v, want NOT_FOUND", err)
	}
	notes, err := s.List(ctx, ListInput{Category: strPtr("Notes")})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("deleted entry still listed: %v", notes)
	}
}

func TestDeleteInvalidID(t *testing.T) {
	s, _, _ := newTestService(t)

	if _, err := s.Delete(context.Background(), DeleteInput{ID: "64f1a2b3c4d5e6f708192a3b"}); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("Delete(malformed id) = %v, want VALIDATION_ERROR", err)
	}
}

func TestDeleteTwice(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	e := mustCreate(t, s, CreateInput{Title: "Once", Category: "Notes"})
	if _, err := s.Delete(ctx, DeleteInput{ID: e.ID}); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if _, err := s.Delete(ctx, DeleteInput{ID: e.ID}); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second Delete = %v, want NOT_FOUND", err)
	}
}
