package store

import (
	"cmp"
	"slices"
	"sync/atomic"

	"github.com/tailored-agentic-units/assistant-state/observability"
)

// sequence orders vertices by creation; it breaks height ties so sibling
// recomputation order is deterministic.
var sequence atomic.Uint64

// hooks are the per-kind behaviours the propagation engine drives.
type hooks interface {
	// refresh brings the value current and reports whether it was recomputed.
	refresh() bool
	// publish delivers the current value to subscribers.
	publish()
	// activate and deactivate run when the vertex gains its first or loses
	// its last listener or dependent.
	activate()
	deactivate()
}

// vertex is the graph bookkeeping shared by Writable and Derived.
type vertex struct {
	name       string
	seq        uint64
	height     int
	version    uint64
	busy       bool
	listeners  int
	dependents []*vertex
	events     observability.Emitter
	hooks      hooks
}

func newVertex(kind string, height int, opts []Option) vertex {
	seq := sequence.Add(1)
	o := buildOptions(kind, seq, opts)
	return vertex{
		name:   o.name,
		seq:    seq,
		height: height,
		events: observability.NewEmitter(o.observer, o.name),
	}
}

// Name returns the store name used in events and errors.
func (v *vertex) Name() string {
	return v.name
}

func (v *vertex) node() *vertex {
	return v
}

func (v *vertex) active() bool {
	return v.listeners > 0 || len(v.dependents) > 0
}

func (v *vertex) retain() {
	wasActive := v.active()
	v.listeners++
	if !wasActive {
		v.hooks.activate()
	}
}

func (v *vertex) release() {
	v.listeners--
	if !v.active() {
		v.hooks.deactivate()
	}
}

func (v *vertex) attach(dependent *vertex) {
	wasActive := v.active()
	v.dependents = append(v.dependents, dependent)
	if !wasActive {
		v.hooks.activate()
	}
}

func (v *vertex) detach(dependent *vertex) {
	idx := slices.Index(v.dependents, dependent)
	if idx < 0 {
		return
	}
	// Clone so a propagation walking the old slice is unaffected.
	v.dependents = slices.Delete(slices.Clone(v.dependents), idx, idx+1)
	if !v.active() {
		v.hooks.deactivate()
	}
}

func (v *vertex) reentrant(op string) error {
	v.events.Emit(EventReentrant, observability.LevelWarning, map[string]any{"op": op})
	return &ReentrancyError{Store: v.name, Op: op}
}

// propagate runs after root has taken a new value. Every active dependent is
// refreshed once in height order, so each sees its sources already current;
// only then are subscribers notified, root first.
func propagate(root *vertex) {
	affected := dependentsOf(root)

	changed := make([]*vertex, 0, len(affected))
	for _, v := range affected {
		if v.hooks.refresh() {
			changed = append(changed, v)
		}
	}

	root.hooks.publish()
	for _, v := range changed {
		v.hooks.publish()
	}
}

// dependentsOf returns the transitive active dependents of root, each once,
// sorted by height then creation order.
func dependentsOf(root *vertex) []*vertex {
	seen := make(map[*vertex]bool)
	var affected []*vertex

	var walk func(*vertex)
	walk = func(v *vertex) {
		for _, dep := range v.dependents {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			affected = append(affected, dep)
			walk(dep)
		}
	}
	walk(root)

	slices.SortFunc(affected, func(a, b *vertex) int {
		if c := cmp.Compare(a.height, b.height); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	return affected
}
