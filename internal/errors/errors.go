package errors

import "fmt"

// ErrorCode represents an Inkwell error code.
type ErrorCode string

const (
	ErrValidation ErrorCode = "VALIDATION_ERROR" // 400
	ErrNotFound   ErrorCode = "NOT_FOUND"        // 404
	ErrStore      ErrorCode = "STORE_ERROR"      // 500, repository failure
	ErrInternal   ErrorCode = "INTERNAL"         // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidation creates a 400 error for invalid input.
func NewValidation(msg string) *Error {
	return &Error{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidID creates a 400 error for a malformed entry identifier.
func NewInvalidID(id string) *Error {
	return &Error{
		Code:    ErrValidation,
		Status:  400,
		Message: fmt.Sprintf("invalid entry id: %q", id),
		Details: map[string]any{"id": id},
	}
}

// NewNotFound creates a 404 error for a missing entry.
func NewNotFound(id string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("entry not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewStore wraps a repository failure as a 500 error. The underlying
// error is kept for logging but never rendered to a client.
func NewStore(err error) *Error {
	return &Error{
		Code:    ErrStore,
		Status:  500,
		Message: "entry store unavailable",
		cause:   err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// Is checks if an error is an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*Error); ok {
		return appErr.Code == code
	}
	return false
}

// StatusOf returns the HTTP status carried by err, defaulting to 500
// for errors outside the taxonomy.
func StatusOf(err error) int {
	if appErr, ok := err.(*Error); ok {
		return appErr.Status
	}
	return 500
}
