package assistant

import "errors"

var (
	// ErrNoBundle is returned by FromContext when the context carries no
	// Bundle.
	ErrNoBundle = errors.New("no assistant bundle in context")

	// ErrMissingStore is returned by Validate when a Bundle lacks one of
	// its stores.
	ErrMissingStore = errors.New("assistant bundle missing store")

	// ErrConfigFormat is returned by LoadConfig for unsupported file
	// extensions.
	ErrConfigFormat = errors.New("unsupported config format")
)
