package store

import (
	"fmt"

	"github.com/tailored-agentic-units/assistant-state/observability"
)

// Option configures a store at construction.
type Option func(*options)

type options struct {
	name     string
	observer observability.Observer
}

// WithName sets the store name used in events and errors.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver sets the observer receiving store events.
func WithObserver(observer observability.Observer) Option {
	return func(o *options) { o.observer = observer }
}

func buildOptions(kind string, seq uint64, opts []Option) options {
	o := options{observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = fmt.Sprintf("%s-%d", kind, seq)
	}
	if o.observer == nil {
		o.observer = observability.NoOpObserver{}
	}
	return o
}
