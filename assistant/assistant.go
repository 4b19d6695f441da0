// Package assistant composes the conversation, runtime and UI stores and
// the derived registry into one Bundle per application.
//
// The bundle initializes from configuration via New, creating every store
// internally. Functional options allow test overrides of the observer and
// the conversation store's clock and id sources.
//
//	cfg, err := assistant.LoadConfig("assistant.yaml")
//	b, err := assistant.New(cfg)
//	ctx = assistant.NewContext(ctx, b)
//	id, err := b.Actions.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})
package assistant

import (
	"fmt"

	"github.com/tailored-agentic-units/assistant-state/conversation"
	"github.com/tailored-agentic-units/assistant-state/derived"
	"github.com/tailored-agentic-units/assistant-state/observability"
	"github.com/tailored-agentic-units/assistant-state/runtimestate"
	"github.com/tailored-agentic-units/assistant-state/uistate"
)

// Option configures a Bundle before its stores are created.
type Option func(*builder)

type builder struct {
	observer     observability.Observer
	conversation []conversation.Option
}

// WithObserver overrides the config-selected observer.
func WithObserver(o observability.Observer) Option {
	return func(b *builder) { b.observer = o }
}

// WithConversationOptions passes extra options to the conversation store.
func WithConversationOptions(opts ...conversation.Option) Option {
	return func(b *builder) { b.conversation = append(b.conversation, opts...) }
}

// Bundle is the set of stores handed to the host UI.
type Bundle struct {
	Conversation *conversation.Store
	Runtime      *runtimestate.Store
	UI           *uistate.Store
	Derived      *derived.Registry
	Actions      *Actions
}

// New creates a Bundle from configuration. Every call returns fresh stores;
// nothing is shared between bundles except the observer.
func New(cfg *Config, opts ...Option) (*Bundle, error) {
	c := DefaultConfig()
	if cfg != nil {
		c.Merge(cfg)
	}

	var b builder
	for _, opt := range opts {
		opt(&b)
	}

	if b.observer == nil {
		observer, err := observability.GetObserver(c.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		b.observer = observer
	}

	convOpts := append([]conversation.Option{conversation.WithObserver(b.observer)}, b.conversation...)
	conv := conversation.New(&c.Conversation, convOpts...)
	rt := runtimestate.New(&c.Runtime, runtimestate.WithObserver(b.observer))
	ui := uistate.New(&c.UI, uistate.WithObserver(b.observer))
	reg := derived.New(conv.State(), rt.State(), ui.State(), &c.Derived, derived.WithObserver(b.observer))

	bundle := &Bundle{
		Conversation: conv,
		Runtime:      rt,
		UI:           ui,
		Derived:      reg,
	}
	bundle.Actions = newActions(bundle, observability.NewEmitter(b.observer, "assistant"))

	bundle.Actions.events.Emit(EventBundleCreate, observability.LevelInfo, map[string]any{
		"observer": c.Observer,
		"theme":    string(ui.Get().Theme),
	})
	return bundle, nil
}

// Validate reports ErrMissingStore when any store is nil.
func (b *Bundle) Validate() error {
	switch {
	case b == nil:
		return fmt.Errorf("%w: bundle is nil", ErrMissingStore)
	case b.Conversation == nil:
		return fmt.Errorf("%w: conversation", ErrMissingStore)
	case b.Runtime == nil:
		return fmt.Errorf("%w: runtime", ErrMissingStore)
	case b.UI == nil:
		return fmt.Errorf("%w: ui", ErrMissingStore)
	case b.Derived == nil:
		return fmt.Errorf("%w: derived", ErrMissingStore)
	case b.Actions == nil:
		return fmt.Errorf("%w: actions", ErrMissingStore)
	}
	return nil
}
