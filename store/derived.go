package store

import (
	"fmt"

	"github.com/tailored-agentic-units/assistant-state/observability"
)

// Derived is a read-only store whose value is a pure function of its
// sources. It has no write path; it changes only by recomputation.
type Derived[T any] struct {
	vertex
	sources  []*vertex
	seen     []uint64
	computed bool
	compute  func() T
	value    T
	subs     subscribers[T]
}

// Derive builds a Derived store over one source.
func Derive[A, T any](a Readable[A], fn func(A) T, opts ...Option) *Derived[T] {
	return newDerived(sourcesOf(a), func() T {
		return fn(a.peek())
	}, opts)
}

// Derive2 builds a Derived store over two sources.
func Derive2[A, B, T any](a Readable[A], b Readable[B], fn func(A, B) T, opts ...Option) *Derived[T] {
	return newDerived(sourcesOf(a, b), func() T {
		return fn(a.peek(), b.peek())
	}, opts)
}

// Derive3 builds a Derived store over three sources.
func Derive3[A, B, C, T any](a Readable[A], b Readable[B], c Readable[C], fn func(A, B, C) T, opts ...Option) *Derived[T] {
	return newDerived(sourcesOf(a, b, c), func() T {
		return fn(a.peek(), b.peek(), c.peek())
	}, opts)
}

// DeriveAll builds a Derived store over any number of sources sharing a type.
// fn receives the source values in the order given.
func DeriveAll[S, T any](sources []Readable[S], fn func([]S) T, opts ...Option) *Derived[T] {
	nodes := make([]interface{ node() *vertex }, len(sources))
	for i, src := range sources {
		nodes[i] = src
	}
	return newDerived(sourcesOf(nodes...), func() T {
		values := make([]S, len(sources))
		for i, src := range sources {
			values[i] = src.peek()
		}
		return fn(values)
	}, opts)
}

func sourcesOf(readables ...interface{ node() *vertex }) []*vertex {
	nodes := make([]*vertex, len(readables))
	for i, r := range readables {
		if r == nil {
			panic(fmt.Sprintf("store: derived source %d is nil", i))
		}
		nodes[i] = r.node()
	}
	return nodes
}

func newDerived[T any](sources []*vertex, compute func() T, opts []Option) *Derived[T] {
	height := 0
	for _, src := range sources {
		height = max(height, src.height)
	}

	d := &Derived[T]{
		vertex:  newVertex("derived", height+1, opts),
		sources: sources,
		seen:    make([]uint64, len(sources)),
		compute: compute,
	}
	d.hooks = d
	return d
}

// Get returns a value consistent with the current values of all sources.
func (d *Derived[T]) Get() T {
	d.refresh()
	return d.value
}

// Subscribe registers fn and calls it immediately with the current value.
// The first subscription attaches d to its sources.
func (d *Derived[T]) Subscribe(fn func(T)) Unsubscriber {
	sub := d.subs.add(fn)
	d.retain()
	d.events.Emit(EventSubscribe, observability.LevelVerbose, map[string]any{"subscribers": d.subs.len()})

	fn(d.value)

	return func() {
		if d.subs.remove(sub) {
			d.release()
			d.events.Emit(EventUnsubscribe, observability.LevelVerbose, map[string]any{"subscribers": d.subs.len()})
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (d *Derived[T]) Subscribers() int {
	return d.subs.len()
}

// Active reports whether d is attached to its sources and kept current
// eagerly.
func (d *Derived[T]) Active() bool {
	return d.active()
}

func (d *Derived[T]) peek() T {
	return d.value
}

// refresh recomputes d when any source version differs from the one seen at
// the last computation. Sources nobody keeps current are refreshed first.
func (d *Derived[T]) refresh() bool {
	stale := !d.computed
	for i, src := range d.sources {
		if !src.active() {
			src.hooks.refresh()
		}
		if src.version != d.seen[i] {
			stale = true
		}
	}
	if !stale {
		return false
	}

	d.value = d.compute()
	for i, src := range d.sources {
		d.seen[i] = src.version
	}
	d.computed = true
	d.version++

	d.events.Emit(EventRecompute, observability.LevelVerbose, map[string]any{
		"version": d.version,
		"height":  d.height,
	})
	return true
}

func (d *Derived[T]) publish() {
	d.events.Emit(EventNotify, observability.LevelVerbose, map[string]any{"subscribers": d.subs.len()})
	d.subs.deliver(d.value)
}

func (d *Derived[T]) activate() {
	d.refresh()
	for _, src := range d.sources {
		src.attach(&d.vertex)
	}
	d.events.Emit(EventActivate, observability.LevelVerbose, map[string]any{"sources": len(d.sources)})
}

func (d *Derived[T]) deactivate() {
	for _, src := range d.sources {
		src.detach(&d.vertex)
	}
	d.events.Emit(EventDeactivate, observability.LevelVerbose, map[string]any{"sources": len(d.sources)})
}
