package entry

import (
	"strings"
	"testing"

	"github.com/rbessler/inkwell/internal/errors"
)

func validEntry() *Entry {
	return &Entry{
		ID:       "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Title:    "Moonlit Sonata",
		Category: CategoryPoems,
		Status:   StatusDraft,
		Content:  "<p>Moonlit walks under pale skies</p>",
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ulid", "01ARZ3NDEKTSV4RRFFQ69G5FAV", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too short", "01ARZ3", true},
		{"mongo-style hex id", "507f1f77bcf86cd799439011", true},
		{"invalid characters", "01ARZ3NDEKTSV4RRFFQ69G5FA!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrValidation) {
				t.Errorf("ValidateID(%q) code = %v, want VALIDATION_ERROR", tt.id, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid entry", func(t *testing.T) {
		if err := Validate(validEntry()); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		e := validEntry()
		e.Title = ""
		err := Validate(e)
		if !errors.Is(err, errors.ErrValidation) {
			t.Fatalf("Validate = %v, want validation error", err)
		}
		if !strings.Contains(err.Error(), "title") {
			t.Errorf("error %q should name the title field", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		e := validEntry()
		e.Category = "Recipes"
		if err := Validate(e); !errors.Is(err, errors.ErrValidation) {
			t.Fatalf("Validate = %v, want validation error", err)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		e := validEntry()
		e.Status = "Archived"
		if err := Validate(e); !errors.Is(err, errors.ErrValidation) {
			t.Fatalf("Validate = %v, want validation error", err)
		}
	})

	t.Run("blank media url", func(t *testing.T) {
		e := validEntry()
		blank := "  "
		e.MediaURL = &blank
		if err := Validate(e); !errors.Is(err, errors.ErrValidation) {
			t.Fatalf("Validate = %v, want validation error", err)
		}
	})

	t.Run("nil media fields pass", func(t *testing.T) {
		e := validEntry()
		e.MediaType = nil
		e.MediaURL = nil
		if err := Validate(e); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	})
}

func TestEnumHelpers(t *testing.T) {
	if !ValidCategory(CategoryMedia) {
		t.Error("Media should be a valid category")
	}
	if ValidCategory("media") {
		t.Error("category matching is case-sensitive")
	}
	if !ValidStatus(StatusPublished) {
		t.Error("Published should be a valid status")
	}
	if ValidStatus("") {
		t.Error("empty status is invalid")
	}
}
