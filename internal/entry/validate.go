package entry

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/oklog/ulid/v2"

	"github.com/rbessler/inkwell/internal/errors"
)

// ValidateID checks that id is a well-formed ULID. A malformed id is a
// validation failure, never a store lookup.
func ValidateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.NewValidation("entry id is required")
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return errors.NewInvalidID(id)
	}
	return nil
}

// Validate checks the schema constraints on a fully merged entry:
// required title, closed category and status sets, and sane media fields.
// It runs before any store write.
func Validate(e *Entry) error {
	err := validation.ValidateStruct(e,
		validation.Field(&e.Title, validation.Required.Error("title is required")),
		validation.Field(&e.Category,
			validation.Required.Error("category is required"),
			validation.In(categoryValues()...).Error("category must be one of: Poems, Stories, Media, Notes"),
		),
		validation.Field(&e.Status,
			validation.Required.Error("status is required"),
			validation.In(statusValues()...).Error("status must be one of: Draft, Published"),
		),
		validation.Field(&e.MediaURL, validation.When(e.MediaURL != nil,
			validation.By(nonBlankPtr("mediaUrl")))),
		validation.Field(&e.MediaType, validation.When(e.MediaType != nil,
			validation.By(nonBlankPtr("mediaType")))),
	)
	if err != nil {
		return errors.NewValidation(err.Error())
	}
	return nil
}

// nonBlankPtr rejects pointers to blank strings; nil means "not set" and
// passes.
func nonBlankPtr(field string) validation.RuleFunc {
	return func(value any) error {
		s, ok := value.(*string)
		if !ok || s == nil {
			return nil
		}
		if strings.TrimSpace(*s) == "" {
			return validation.NewError("validation_blank", field+" must not be blank")
		}
		return nil
	}
}

func categoryValues() []any {
	vals := make([]any, len(Categories))
	for i, c := range Categories {
		vals[i] = c
	}
	return vals
}

func statusValues() []any {
	vals := make([]any, len(Statuses))
	for i, s := range Statuses {
		vals[i] = s
	}
	return vals
}
