package store

import (
	"errors"
	"fmt"
)

// ErrReentrant is returned when a store is mutated while it is still
// notifying subscribers of a previous mutation.
var ErrReentrant = errors.New("reentrant store mutation")

// ReentrancyError identifies the store and operation that were rejected.
type ReentrancyError struct {
	Store string
	Op    string
}

// Error implements the error interface.
func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("%s on store %s: %v", e.Op, e.Store, ErrReentrant)
}

// Unwrap enables errors.Is(err, ErrReentrant).
func (e *ReentrancyError) Unwrap() error {
	return ErrReentrant
}
