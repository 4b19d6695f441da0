package runtimestate

import "github.com/tailored-agentic-units/assistant-state/observability"

const (
	EventAttach                 observability.EventType = "runtime.attach"
	EventDetach                 observability.EventType = "runtime.detach"
	EventConnection             observability.EventType = "runtime.connection"
	EventCapabilitiesNormalized observability.EventType = "runtime.capabilities.normalized"
	EventClear                  observability.EventType = "runtime.clear"
)
