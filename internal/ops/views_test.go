package ops

import (
	"context"
	"testing"

	"github.com/rbessler/inkwell/internal/errors"
)

func TestIncrementViews(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	e := mustCreate(t, s, CreateInput{Title: "Counted", Category: "Notes"})

	// Cache the entry at zero views, then bump it. The bump drops the
	// entry key, so the next Get reads the exact count.
	if _, err := s.Get(ctx, GetInput{ID: e.ID}); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.IncrementViews(ctx, e.ID); err != nil {
			t.Fatalf("IncrementViews failed: %v", err)
		}
	}

	got, err := s.Get(ctx, GetInput{ID: e.ID})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Views != 3 {
		t.Errorf("Views = %d, want 3", got.Views)
	}
}

func TestIncrementViewsErrors(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	if err := s.IncrementViews(ctx, "not-a-ulid"); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("IncrementViews(malformed) = %v, want VALIDATION_ERROR", err)
	}
	if err := s.IncrementViews(ctx, "01ARZ3NDEKTSV4RRFFQ69G5FAV"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("IncrementViews(missing) = %v, want NOT_FOUND", err)
	}
}
