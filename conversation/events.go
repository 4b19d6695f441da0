package conversation

import "github.com/tailored-agentic-units/assistant-state/observability"

const (
	EventMessageAdd     observability.EventType = "conversation.message.add"
	EventMessageUpdate  observability.EventType = "conversation.message.update"
	EventMessageRemove  observability.EventType = "conversation.message.remove"
	EventMessageInvalid observability.EventType = "conversation.message.invalid"
	EventClear          observability.EventType = "conversation.clear"
	EventStart          observability.EventType = "conversation.start"
)
