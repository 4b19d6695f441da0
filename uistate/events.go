package uistate

import "github.com/tailored-agentic-units/assistant-state/observability"

const (
	EventThemeRejected observability.EventType = "ui.theme.rejected"
	EventClear         observability.EventType = "ui.clear"
)
