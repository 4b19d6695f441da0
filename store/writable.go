package store

import "github.com/tailored-agentic-units/assistant-state/observability"

// Writable is a mutable container whose changes are pushed to subscribers
// and to every Derived store built on it.
type Writable[T any] struct {
	vertex
	value T
	subs  subscribers[T]
}

// NewWritable creates a Writable holding initial.
func NewWritable[T any](initial T, opts ...Option) *Writable[T] {
	w := &Writable[T]{
		vertex: newVertex("writable", 0, opts),
		value:  initial,
	}
	w.hooks = w
	return w
}

// Get returns the current value.
func (w *Writable[T]) Get() T {
	return w.value
}

// Set replaces the value and notifies subscribers before returning. It fails
// with ErrReentrant when called while w is still notifying.
func (w *Writable[T]) Set(value T) error {
	if w.busy {
		return w.reentrant("set")
	}
	w.busy = true
	defer func() { w.busy = false }()

	w.commit(value)
	return nil
}

// Update applies fn to the current value and behaves as Set with the result.
// fn must be pure; a Set or Update on w from inside fn fails with ErrReentrant.
func (w *Writable[T]) Update(fn func(T) T) error {
	if w.busy {
		return w.reentrant("update")
	}
	w.busy = true
	defer func() { w.busy = false }()

	w.commit(fn(w.value))
	return nil
}

// Subscribe registers fn and calls it immediately with the current value.
func (w *Writable[T]) Subscribe(fn func(T)) Unsubscriber {
	sub := w.subs.add(fn)
	w.retain()
	w.events.Emit(EventSubscribe, observability.LevelVerbose, map[string]any{"subscribers": w.subs.len()})

	fn(w.value)

	return func() {
		if w.subs.remove(sub) {
			w.release()
			w.events.Emit(EventUnsubscribe, observability.LevelVerbose, map[string]any{"subscribers": w.subs.len()})
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (w *Writable[T]) Subscribers() int {
	return w.subs.len()
}

func (w *Writable[T]) commit(value T) {
	w.value = value
	w.version++
	w.events.Emit(EventSet, observability.LevelVerbose, map[string]any{
		"version":    w.version,
		"dependents": len(w.dependents),
	})
	propagate(&w.vertex)
}

func (w *Writable[T]) peek() T {
	return w.value
}

func (w *Writable[T]) refresh() bool { return false }
func (w *Writable[T]) activate()     {}
func (w *Writable[T]) deactivate()   {}

func (w *Writable[T]) publish() {
	w.events.Emit(EventNotify, observability.LevelVerbose, map[string]any{"subscribers": w.subs.len()})
	w.subs.deliver(w.value)
}
