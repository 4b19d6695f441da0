package assistant

import (
	"errors"

	"github.com/tailored-agentic-units/assistant-state/conversation"
	"github.com/tailored-agentic-units/assistant-state/observability"
	"github.com/tailored-agentic-units/assistant-state/runtimestate"
	"github.com/tailored-agentic-units/assistant-state/uistate"
)

// Actions is the write surface of a Bundle. Each method delegates to the
// owning store.
type Actions struct {
	conv   *conversation.Store
	rt     *runtimestate.Store
	ui     *uistate.Store
	events observability.Emitter
}

func newActions(b *Bundle, events observability.Emitter) *Actions {
	return &Actions{conv: b.Conversation, rt: b.Runtime, ui: b.UI, events: events}
}

// Conversation

// AddMessage appends a message to the conversation and returns its id.
func (a *Actions) AddMessage(in conversation.MessageInput) (string, error) {
	return a.conv.AddMessage(in)
}

// UpdateMessage merges patch into the message with id.
func (a *Actions) UpdateMessage(id string, patch conversation.MessagePatch) error {
	return a.conv.UpdateMessage(id, patch)
}

// RemoveMessage deletes the message with id; an unknown id is a no-op.
func (a *Actions) RemoveMessage(id string) error {
	return a.conv.RemoveMessage(id)
}

// ClearConversation resets the conversation to its initial state.
func (a *Actions) ClearConversation() error {
	return a.conv.Clear()
}

// SetLoading marks whether a response is in progress.
func (a *Actions) SetLoading(loading bool) error {
	return a.conv.SetLoading(loading)
}

// SetError records err as the conversation error; nil clears it.
func (a *Actions) SetError(err error) error {
	return a.conv.SetError(err)
}

// SetLatestMessageID sets the latest message id; "" clears it.
func (a *Actions) SetLatestMessageID(id string) error {
	return a.conv.SetLatestMessageID(id)
}

// UpdateMetadata merges patch into the conversation metadata.
func (a *Actions) UpdateMetadata(patch conversation.MetadataPatch) error {
	return a.conv.UpdateMetadata(patch)
}

// MessageByID looks up a message without subscribing.
func (a *Actions) MessageByID(id string) (conversation.Message, bool) {
	return a.conv.MessageByID(id)
}

// LatestMessage returns the most recent message without subscribing.
func (a *Actions) LatestMessage() (conversation.Message, bool) {
	return a.conv.LatestMessage()
}

// MessageCount returns the number of messages without subscribing.
func (a *Actions) MessageCount() int {
	return a.conv.MessageCount()
}

// Runtime

// SetRuntime attaches rt; nil detaches the current runtime.
func (a *Actions) SetRuntime(rt runtimestate.Runtime) error {
	return a.rt.SetRuntime(rt)
}

// SetConnected records the runtime connection status.
func (a *Actions) SetConnected(connected bool) error {
	return a.rt.SetConnected(connected)
}

// UpdateRuntimeSettings merges patch into the runtime generation settings.
func (a *Actions) UpdateRuntimeSettings(patch runtimestate.SettingsPatch) error {
	return a.rt.UpdateSettings(patch)
}

// SetModel records the runtime model identifier; "" clears it.
func (a *Actions) SetModel(model string) error {
	return a.rt.SetModel(model)
}

// ClearRuntime detaches the runtime and restores default settings.
func (a *Actions) ClearRuntime() error {
	return a.rt.Clear()
}

// UI

// SetScrolledToBottom records whether the message list is at the bottom.
func (a *Actions) SetScrolledToBottom(scrolled bool) error {
	return a.ui.SetScrolledToBottom(scrolled)
}

// SetShowScrollButton toggles the scroll-to-bottom button.
func (a *Actions) SetShowScrollButton(show bool) error {
	return a.ui.SetShowScrollButton(show)
}

// SetSelectedMessage selects the message with id; "" clears the selection.
func (a *Actions) SetSelectedMessage(id string) error {
	return a.ui.SetSelectedMessage(id)
}

// SetComposerValue replaces the composer text.
func (a *Actions) SetComposerValue(value string) error {
	return a.ui.SetComposerValue(value)
}

// SetTheme applies theme; an unknown theme falls back to the default.
func (a *Actions) SetTheme(theme uistate.Theme) error {
	return a.ui.SetTheme(theme)
}

// ToggleSidebar flips the sidebar between open and closed.
func (a *Actions) ToggleSidebar() error {
	return a.ui.ToggleSidebar()
}

// ClearUI restores the configured UI defaults.
func (a *Actions) ClearUI() error {
	return a.ui.Clear()
}

// Reset clears all three stores. Each store notifies separately; there is no
// cross-store transaction. Every clear is attempted even if one fails.
func (a *Actions) Reset() error {
	err := errors.Join(a.conv.Clear(), a.rt.Clear(), a.ui.Clear())
	if err == nil {
		a.events.Emit(EventReset, observability.LevelInfo, nil)
	}
	return err
}
