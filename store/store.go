package store

// Readable is the subscription interface shared by Writable and Derived.
// It is sealed: only types in this package implement it.
type Readable[T any] interface {
	// Get returns the current value. It never blocks and never fails.
	Get() T
	// Subscribe registers fn, calls it once with the current value, and
	// again after every change until the returned Unsubscriber is called.
	Subscribe(fn func(T)) Unsubscriber
	// Name returns the store name used in events and errors.
	Name() string

	node() *vertex
	peek() T
}

// ReadOnly hides the write path of a store behind Readable.
func ReadOnly[T any](r Readable[T]) Readable[T] {
	if ro, ok := r.(readOnly[T]); ok {
		return ro
	}
	return readOnly[T]{src: r}
}

type readOnly[T any] struct {
	src Readable[T]
}

func (r readOnly[T]) Get() T                            { return r.src.Get() }
func (r readOnly[T]) Subscribe(fn func(T)) Unsubscriber { return r.src.Subscribe(fn) }
func (r readOnly[T]) Name() string                      { return r.src.Name() }
func (r readOnly[T]) node() *vertex                     { return r.src.node() }
func (r readOnly[T]) peek() T                           { return r.src.peek() }
