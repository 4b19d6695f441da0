package derived

import (
	"strings"

	"github.com/tailored-agentic-units/assistant-state/conversation"
	"github.com/tailored-agentic-units/assistant-state/observability"
	"github.com/tailored-agentic-units/assistant-state/runtimestate"
	"github.com/tailored-agentic-units/assistant-state/store"
	"github.com/tailored-agentic-units/assistant-state/uistate"
)

// Option configures a Registry.
type Option func(*settings)

type settings struct {
	observer observability.Observer
}

// WithObserver sets the observer for derived store events.
func WithObserver(o observability.Observer) Option {
	return func(s *settings) { s.observer = o }
}

// Registry is the fixed set of derived values. Optional values (a message
// that may not exist) are nil pointers to copies.
type Registry struct {
	// Messages
	MessageCount            *store.Derived[int]
	HasMessages             *store.Derived[bool]
	LatestMessage           *store.Derived[*conversation.Message]
	UserMessages            *store.Derived[[]conversation.Message]
	AssistantMessages       *store.Derived[[]conversation.Message]
	StreamingMessages       *store.Derived[[]conversation.Message]
	IsStreaming             *store.Derived[bool]
	CurrentStreamingMessage *store.Derived[*conversation.Message]

	// Runtime
	CanSendMessage      *store.Derived[bool]
	SupportsStreaming   *store.Derived[bool]
	SupportsAttachments *store.Derived[bool]
	MaxTokens           *store.Derived[int]
	RuntimeName         *store.Derived[string]

	// UI
	ShouldShowScrollButton *store.Derived[bool]
	HasComposerContent     *store.Derived[bool]
	CanSend                *store.Derived[bool]

	// Summaries
	ConversationSummary *store.Derived[ConversationSummary]
	RuntimeSummary      *store.Derived[RuntimeSummary]
	AppState            *store.Derived[AppState]
}

// New wires the registry over the three base stores. A nil cfg uses
// DefaultConfig.
func New(
	conv store.Readable[conversation.Conversation],
	rt store.Readable[runtimestate.State],
	ui store.Readable[uistate.State],
	cfg *Config,
	opts ...Option,
) *Registry {
	conf := DefaultConfig()
	if cfg != nil {
		conf.Merge(cfg)
	}

	s := settings{observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(&s)
	}
	named := func(name string) []store.Option {
		return []store.Option{store.WithName(name), store.WithObserver(s.observer)}
	}

	r := &Registry{}

	r.MessageCount = store.Derive(conv, func(c conversation.Conversation) int {
		return len(c.Messages)
	}, named("messageCount")...)

	r.HasMessages = store.Derive(r.MessageCount, func(n int) bool {
		return n > 0
	}, named("hasMessages")...)

	r.LatestMessage = store.Derive(conv, func(c conversation.Conversation) *conversation.Message {
		return optional(c.Latest())
	}, named("latestMessage")...)

	r.UserMessages = store.Derive(conv, byRole(conversation.RoleUser), named("userMessages")...)
	r.AssistantMessages = store.Derive(conv, byRole(conversation.RoleAssistant), named("assistantMessages")...)

	r.StreamingMessages = store.Derive(conv, func(c conversation.Conversation) []conversation.Message {
		return c.Filter(func(m conversation.Message) bool { return m.Status == conversation.StatusStreaming })
	}, named("streamingMessages")...)

	r.IsStreaming = store.Derive(r.StreamingMessages, func(msgs []conversation.Message) bool {
		return len(msgs) > 0
	}, named("isStreaming")...)

	r.CurrentStreamingMessage = store.Derive(conv, func(c conversation.Conversation) *conversation.Message {
		if c.LatestMessageID == "" {
			return nil
		}
		return optional(c.Find(c.LatestMessageID))
	}, named("currentStreamingMessage")...)

	r.CanSendMessage = store.Derive2(conv, rt, func(c conversation.Conversation, st runtimestate.State) bool {
		return !c.Loading && st.HasRuntime() && st.Connected
	}, named("canSendMessage")...)

	r.SupportsStreaming = store.Derive(rt, func(st runtimestate.State) bool {
		return st.Capabilities.SupportsStreaming
	}, named("supportsStreaming")...)

	r.SupportsAttachments = store.Derive(rt, func(st runtimestate.State) bool {
		return st.Capabilities.SupportsAttachments
	}, named("supportsAttachments")...)

	r.MaxTokens = store.Derive(rt, func(st runtimestate.State) int {
		if st.Capabilities.MaxTokens > 0 {
			return st.Capabilities.MaxTokens
		}
		return conf.DefaultMaxTokens
	}, named("maxTokens")...)

	r.RuntimeName = store.Derive(rt, func(st runtimestate.State) string {
		if name := st.RuntimeName(); name != "" {
			return name
		}
		return conf.NoRuntimeName
	}, named("runtimeName")...)

	r.ShouldShowScrollButton = store.Derive2(ui, r.HasMessages, func(u uistate.State, has bool) bool {
		return has && !u.ScrolledToBottom && u.ShowScrollButton
	}, named("shouldShowScrollButton")...)

	r.HasComposerContent = store.Derive(ui, func(u uistate.State) bool {
		return strings.TrimSpace(u.ComposerValue) != ""
	}, named("hasComposerContent")...)

	r.CanSend = store.Derive3(r.CanSendMessage, r.HasComposerContent, r.IsStreaming,
		func(canSend, hasContent, streaming bool) bool {
			return canSend && hasContent && !streaming
		}, named("canSend")...)

	r.ConversationSummary = store.Derive3(conv, r.MessageCount, r.IsStreaming,
		func(c conversation.Conversation, count int, streaming bool) ConversationSummary {
			return ConversationSummary{
				ID:           c.ID,
				MessageCount: count,
				Loading:      c.Loading,
				Streaming:    streaming,
				HasError:     c.Error != "",
				LastUpdated:  c.Metadata.UpdatedAt,
			}
		}, named("conversationSummary")...)

	r.RuntimeSummary = store.Derive2(rt, r.CanSendMessage,
		func(st runtimestate.State, canSend bool) RuntimeSummary {
			return RuntimeSummary{
				HasRuntime:   st.HasRuntime(),
				Connected:    st.Connected,
				CanSend:      canSend,
				Capabilities: st.Capabilities,
				Name:         st.RuntimeName(),
			}
		}, named("runtimeSummary")...)

	r.AppState = store.Derive3(r.ConversationSummary, r.RuntimeSummary, ui,
		func(cs ConversationSummary, rs RuntimeSummary, u uistate.State) AppState {
			return AppState{
				Conversation: cs,
				Runtime:      rs,
				UI: UISummary{
					ScrolledToBottom: u.ScrolledToBottom,
					HasInput:         u.ComposerValue != "",
					SelectedMessage:  u.SelectedMessageID,
				},
				Ready: rs.CanSend && !cs.Loading,
			}
		}, named("appState")...)

	return r
}

func byRole(role conversation.Role) func(conversation.Conversation) []conversation.Message {
	return func(c conversation.Conversation) []conversation.Message {
		return c.Filter(func(m conversation.Message) bool { return m.Role == role })
	}
}

func optional(m conversation.Message, ok bool) *conversation.Message {
	if !ok {
		return nil
	}
	return &m
}
