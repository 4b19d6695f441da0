package assistant

import (
	"context"
	"fmt"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying b.
func NewContext(ctx context.Context, b *Bundle) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// FromContext returns the Bundle carried by ctx. It fails with ErrNoBundle
// when ctx carries none, and with ErrMissingStore when the carried bundle is
// incomplete.
func FromContext(ctx context.Context) (*Bundle, error) {
	b, ok := ctx.Value(contextKey{}).(*Bundle)
	if !ok || b == nil {
		return nil, ErrNoBundle
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bundle in context: %w", err)
	}
	return b, nil
}
