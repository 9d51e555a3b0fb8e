package entities

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an identifier does not resolve to a stored entity.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when inserting a record whose identifier is taken.
var ErrAlreadyExists = errors.New("already exists")

// ValidationError reports a field value that violates an entity constraint
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err wraps a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
