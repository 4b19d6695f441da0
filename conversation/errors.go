package conversation

import (
	"errors"
	"fmt"
)

// Sentinel errors for conversation operations.
var (
	ErrValidation = errors.New("invalid message")
	ErrNotFound   = errors.New("message not found")
)

// ValidationError describes malformed message input.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap enables errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports an operation on a message id that does not exist.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrNotFound, e.ID)
}

// Unwrap enables errors.Is(err, ErrNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
