package conversation

import (
	"fmt"
	"slices"
	"time"

	"github.com/tailored-agentic-units/assistant-state/observability"
	"github.com/tailored-agentic-units/assistant-state/store"
)

// maxIDAttempts bounds regeneration when a generated id collides with an
// existing message.
const maxIDAttempts = 8

// Option configures a Store after config-driven initialization.
type Option func(*Store)

// WithObserver sets the observer for conversation and store events.
func WithObserver(o observability.Observer) Option {
	return func(s *Store) { s.observer = o }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMessageIDs overrides message id generation.
func WithMessageIDs(next func() string) Option {
	return func(s *Store) { s.messageID = next }
}

// WithConversationIDs overrides conversation id generation.
func WithConversationIDs(next func() string) Option {
	return func(s *Store) { s.conversationID = next }
}

// Store is the conversation store: an observable Conversation plus the
// domain operations allowed to change it.
type Store struct {
	state          *store.Writable[Conversation]
	cfg            Config
	observer       observability.Observer
	events         observability.Emitter
	now            func() time.Time
	messageID      func() string
	conversationID func() string
}

// New creates an empty conversation store. A nil cfg uses DefaultConfig.
func New(cfg *Config, opts ...Option) *Store {
	c := DefaultConfig()
	if cfg != nil {
		c.Merge(cfg)
	}

	s := &Store{
		cfg:            c,
		observer:       observability.NoOpObserver{},
		now:            time.Now,
		messageID:      NewMessageID,
		conversationID: NewConversationID,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.events = observability.NewEmitter(s.observer, "conversation")
	s.state = store.NewWritable(initial(c.Title),
		store.WithName("conversation"),
		store.WithObserver(s.observer),
	)
	return s
}

// State exposes the conversation for subscription and derivation without
// its write path.
func (s *Store) State() store.Readable[Conversation] {
	return store.ReadOnly[Conversation](s.state)
}

// Get returns the current conversation.
func (s *Store) Get() Conversation {
	return s.state.Get()
}

// Subscribe registers fn for the current conversation and every change.
func (s *Store) Subscribe(fn func(Conversation)) store.Unsubscriber {
	return s.state.Subscribe(fn)
}

// AddMessage validates in, appends the resulting message and returns its id.
// The first message of a conversation also assigns the conversation id and
// CreatedAt.
func (s *Store) AddMessage(in MessageInput) (string, error) {
	current := s.state.Get()

	msg, err := s.newMessage(in, current)
	if err != nil {
		s.events.Emit(EventMessageInvalid, observability.LevelWarning, map[string]any{"error": err.Error()})
		return "", err
	}

	next := current
	next.Messages = append(slices.Clip(current.Messages), msg)
	next.Metadata.UpdatedAt = msg.Timestamp

	started := next.ID == ""
	if started {
		next.ID = s.conversationID()
		next.Metadata.CreatedAt = msg.Timestamp
	}

	if err := s.state.Set(next); err != nil {
		return "", fmt.Errorf("add message: %w", err)
	}

	if started {
		s.events.Emit(EventStart, observability.LevelInfo, map[string]any{"conversation_id": next.ID})
	}
	s.events.Emit(EventMessageAdd, observability.LevelInfo, map[string]any{
		"id":    msg.ID,
		"role":  string(msg.Role),
		"count": len(next.Messages),
	})
	return msg.ID, nil
}

// newMessage is the single construction path for messages: validation, id
// assignment and default filling all happen here.
func (s *Store) newMessage(in MessageInput, current Conversation) (Message, error) {
	if err := in.validate(); err != nil {
		return Message{}, err
	}

	// A caller id is honoured only while unique; otherwise a fresh one is
	// generated.
	id := in.ID
	if id == "" || current.IndexOf(id) >= 0 {
		var err error
		if id, err = s.freshID(current); err != nil {
			return Message{}, err
		}
	}

	msg := Message{
		ID:        id,
		Role:      in.Role,
		Content:   in.Content,
		Timestamp: in.Timestamp,
		Status:    in.Status,
		Metadata:  in.Metadata,
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	if msg.Status == "" {
		msg.Status = StatusComplete
	}
	if msg.Metadata.Model == "" {
		msg.Metadata.Model = s.cfg.DefaultModel
	}
	return msg, nil
}

func (s *Store) freshID(current Conversation) (string, error) {
	for range maxIDAttempts {
		id := s.messageID()
		if id != "" && current.IndexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate message id: %d attempts collided", maxIDAttempts)
}

// UpdateMessage merges patch over the message with id. Metadata is merged
// field by field. The message timestamp becomes patch.Timestamp or now, and
// the conversation UpdatedAt follows it.
func (s *Store) UpdateMessage(id string, patch MessagePatch) error {
	current := s.state.Get()

	idx := current.IndexOf(id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}
	if err := patch.validate(); err != nil {
		return err
	}

	msg := patch.apply(current.Messages[idx], s.now())

	next := current
	next.Messages = slices.Clone(current.Messages)
	next.Messages[idx] = msg
	next.Metadata.UpdatedAt = msg.Timestamp

	if err := s.state.Set(next); err != nil {
		return fmt.Errorf("update message: %w", err)
	}

	s.events.Emit(EventMessageUpdate, observability.LevelVerbose, map[string]any{
		"id":     id,
		"status": string(msg.Status),
	})
	return nil
}

// RemoveMessage drops the message with id. Removing an unknown id is not an
// error; the store still records the update and notifies.
func (s *Store) RemoveMessage(id string) error {
	current := s.state.Get()

	next := current
	next.Messages = slices.DeleteFunc(slices.Clone(current.Messages), func(m Message) bool {
		return m.ID == id
	})
	next.Metadata.UpdatedAt = s.now()

	if err := s.state.Set(next); err != nil {
		return fmt.Errorf("remove message: %w", err)
	}

	s.events.Emit(EventMessageRemove, observability.LevelVerbose, map[string]any{
		"id":      id,
		"removed": len(next.Messages) < len(current.Messages),
	})
	return nil
}

// Clear resets the store to an empty conversation.
func (s *Store) Clear() error {
	if err := s.state.Set(initial(s.cfg.Title)); err != nil {
		return fmt.Errorf("clear conversation: %w", err)
	}
	s.events.Emit(EventClear, observability.LevelInfo, nil)
	return nil
}

// SetLoading records whether the assistant is producing a response.
func (s *Store) SetLoading(loading bool) error {
	return s.touch("set loading", func(c *Conversation) { c.Loading = loading })
}

// SetError records err as the conversation error; nil clears it.
func (s *Store) SetError(err error) error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return s.touch("set error", func(c *Conversation) { c.Error = msg })
}

// SetLatestMessageID marks id as the message currently being produced; the
// empty string clears it. The id is not required to exist.
func (s *Store) SetLatestMessageID(id string) error {
	return s.touch("set latest message", func(c *Conversation) { c.LatestMessageID = id })
}

// UpdateMetadata merges patch into the conversation metadata. CreatedAt is
// owned by AddMessage and cannot be patched.
func (s *Store) UpdateMetadata(patch MetadataPatch) error {
	return s.touch("update metadata", func(c *Conversation) {
		if patch.Title != nil {
			c.Metadata.Title = *patch.Title
		}
	})
}

// touch applies a field change and stamps UpdatedAt in one notification.
func (s *Store) touch(op string, change func(*Conversation)) error {
	err := s.state.Update(func(c Conversation) Conversation {
		change(&c)
		c.Metadata.UpdatedAt = s.now()
		return c
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MessageByID returns a copy of the message with id.
func (s *Store) MessageByID(id string) (Message, bool) {
	return s.state.Get().Find(id)
}

// LatestMessage returns a copy of the last message.
func (s *Store) LatestMessage() (Message, bool) {
	return s.state.Get().Latest()
}

// MessageCount returns the number of messages.
func (s *Store) MessageCount() int {
	return len(s.state.Get().Messages)
}

// Messages returns a copy of the message sequence.
func (s *Store) Messages() []Message {
	return slices.Clone(s.state.Get().Messages)
}

// Subscribers reports the number of live subscriptions on the conversation.
func (s *Store) Subscribers() int {
	return s.state.Subscribers()
}
