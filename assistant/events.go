package assistant

import "github.com/tailored-agentic-units/assistant-state/observability"

// Bundle lifecycle events.
const (
	EventBundleCreate observability.EventType = "assistant.bundle.create"
	EventReset        observability.EventType = "assistant.reset"
)
