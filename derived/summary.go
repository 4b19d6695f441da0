package derived

import (
	"time"

	"github.com/tailored-agentic-units/assistant-state/runtimestate"
)

// ConversationSummary is a status view of the conversation.
type ConversationSummary struct {
	ID           string    `json:"id"`
	MessageCount int       `json:"message_count"`
	Loading      bool      `json:"loading"`
	Streaming    bool      `json:"streaming"`
	HasError     bool      `json:"has_error"`
	LastUpdated  time.Time `json:"last_updated"`
}

// RuntimeSummary is a status view of the runtime. Name is empty when no
// runtime is attached.
type RuntimeSummary struct {
	HasRuntime   bool                      `json:"has_runtime"`
	Connected    bool                      `json:"connected"`
	CanSend      bool                      `json:"can_send"`
	Capabilities runtimestate.Capabilities `json:"capabilities"`
	Name         string                    `json:"name,omitempty"`
}

// UISummary is the slice of UI state reported in AppState.
type UISummary struct {
	ScrolledToBottom bool   `json:"scrolled_to_bottom"`
	HasInput         bool   `json:"has_input"`
	SelectedMessage  string `json:"selected_message,omitempty"`
}

// AppState is the top-level status of the assistant. Ready means a message
// could be sent now.
type AppState struct {
	Conversation ConversationSummary `json:"conversation"`
	Runtime      RuntimeSummary      `json:"runtime"`
	UI           UISummary           `json:"ui"`
	Ready        bool                `json:"ready"`
}
