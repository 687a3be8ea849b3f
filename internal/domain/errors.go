package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a missing or blank document in a match request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrResourceUnavailable signals that a startup resource (stop-word lexicon) cannot be loaded.
	ErrResourceUnavailable = errors.New("resource unavailable")
	// ErrUnsupportedFormat signals an uploaded document type that cannot be converted to text.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrPayloadTooLarge signals a request body or upload above the configured limit.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// InputError wraps ErrInvalidInput with the name of the offending field.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s must be provided and non-empty", ErrInvalidInput.Error(), e.Field)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// NewInputError creates an input error for the given request field.
func NewInputError(field string) error {
	return &InputError{Field: field}
}
