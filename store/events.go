package store

import "github.com/tailored-agentic-units/assistant-state/observability"

const (
	// Writable stores
	EventSet         observability.EventType = "store.set"
	EventNotify      observability.EventType = "store.notify"
	EventReentrant   observability.EventType = "store.reentrant"
	EventSubscribe   observability.EventType = "store.subscribe"
	EventUnsubscribe observability.EventType = "store.unsubscribe"

	// Derived stores
	EventRecompute  observability.EventType = "derived.recompute"
	EventActivate   observability.EventType = "derived.activate"
	EventDeactivate observability.EventType = "derived.deactivate"
)
