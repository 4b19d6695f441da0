package conversation_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tailored-agentic-units/assistant-state/conversation"
	"github.com/tailored-agentic-units/assistant-state/observability"
	"github.com/tailored-agentic-units/assistant-state/store"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// clock advances one second per reading.
func clock() func() time.Time {
	current := epoch
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func sequence(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newStore(opts ...conversation.Option) *conversation.Store {
	base := []conversation.Option{
		conversation.WithClock(clock()),
		conversation.WithMessageIDs(sequence("msg")),
		conversation.WithConversationIDs(sequence("conv")),
	}
	return conversation.New(nil, append(base, opts...)...)
}

func TestNew_InitialState(t *testing.T) {
	s := conversation.New(&conversation.Config{Title: "Draft"})

	got := s.Get()
	if got.ID != "" {
		t.Errorf("ID = %q, want empty", got.ID)
	}
	if got.Messages == nil || len(got.Messages) != 0 {
		t.Errorf("Messages = %#v, want empty non-nil slice", got.Messages)
	}
	if got.Metadata.Title != "Draft" {
		t.Errorf("Title = %q, want %q", got.Metadata.Title, "Draft")
	}
	if !got.Metadata.CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero", got.Metadata.CreatedAt)
	}
}

func TestAddMessage_FirstMessage(t *testing.T) {
	s := newStore()

	id, err := s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})
	if err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}
	if id == "" {
		t.Fatal("AddMessage returned an empty id")
	}
	if s.MessageCount() != 1 {
		t.Errorf("MessageCount() = %d, want 1", s.MessageCount())
	}

	c := s.Get()
	if c.ID == "" {
		t.Error("conversation id was not assigned")
	}
	if c.Metadata.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
	if !c.Metadata.UpdatedAt.Equal(c.Metadata.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want %v", c.Metadata.UpdatedAt, c.Metadata.CreatedAt)
	}

	msg, ok := s.MessageByID(id)
	if !ok {
		t.Fatalf("MessageByID(%q) not found", id)
	}
	want := conversation.Message{
		ID:        id,
		Role:      conversation.RoleUser,
		Content:   "hi",
		Timestamp: c.Metadata.CreatedAt,
		Status:    conversation.StatusComplete,
		Metadata:  conversation.MessageMetadata{Model: "unknown"},
	}
	if diff := cmp.Diff(want, msg); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestAddMessage_LaterMessagesKeepIdentity(t *testing.T) {
	s := newStore()

	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "one"})
	first := s.Get()

	s.AddMessage(conversation.MessageInput{Role: conversation.RoleAssistant, Content: "two"})
	second := s.Get()

	if second.ID != first.ID {
		t.Errorf("conversation id changed: %q -> %q", first.ID, second.ID)
	}
	if !second.Metadata.CreatedAt.Equal(first.Metadata.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", first.Metadata.CreatedAt, second.Metadata.CreatedAt)
	}
	if !second.Metadata.UpdatedAt.After(first.Metadata.UpdatedAt) {
		t.Errorf("UpdatedAt %v did not advance past %v", second.Metadata.UpdatedAt, first.Metadata.UpdatedAt)
	}
}

func TestAddMessage_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input conversation.MessageInput
		field string
	}{
		{"empty content", conversation.MessageInput{Role: conversation.RoleUser}, "content"},
		{"invalid role", conversation.MessageInput{Role: "bogus", Content: "x"}, "role"},
		{"missing role", conversation.MessageInput{Content: "x"}, "role"},
		{"invalid status", conversation.MessageInput{Role: conversation.RoleUser, Content: "x", Status: "pending"}, "status"},
		{"negative tokens", conversation.MessageInput{Role: conversation.RoleUser, Content: "x", Metadata: conversation.MessageMetadata{Tokens: -1}}, "metadata.tokens"},
		{"negative processing time", conversation.MessageInput{Role: conversation.RoleUser, Content: "x", Metadata: conversation.MessageMetadata{ProcessingTime: -time.Second}}, "metadata.processing_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})
			before := s.Get()

			notified := 0
			unsubscribe := s.Subscribe(func(conversation.Conversation) { notified++ })
			defer unsubscribe()
			notified = 0

			_, err := s.AddMessage(tt.input)
			if !errors.Is(err, conversation.ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}

			var verr *conversation.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not *ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}

			if diff := cmp.Diff(before, s.Get()); diff != "" {
				t.Errorf("store changed after rejected input (-before +after):\n%s", diff)
			}
			if notified != 0 {
				t.Errorf("rejected input notified %d times, want 0", notified)
			}
		})
	}
}

func TestAddMessage_CallerID(t *testing.T) {
	s := newStore()

	id, err := s.AddMessage(conversation.MessageInput{ID: "custom", Role: conversation.RoleUser, Content: "hi"})
	if err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}
	if id != "custom" {
		t.Errorf("id = %q, want %q", id, "custom")
	}

	again, err := s.AddMessage(conversation.MessageInput{ID: "custom", Role: conversation.RoleUser, Content: "again"})
	if err != nil {
		t.Fatalf("AddMessage with taken id failed: %v", err)
	}
	if again == "" || again == "custom" {
		t.Errorf("id = %q, want a fresh id distinct from %q", again, "custom")
	}
	if s.MessageCount() != 2 {
		t.Errorf("MessageCount() = %d, want 2", s.MessageCount())
	}

	msg, ok := s.MessageByID(again)
	if !ok || msg.Content != "again" {
		t.Errorf("MessageByID(%q) = %+v, %v; want the second message", again, msg, ok)
	}
}

func TestAddMessage_GeneratedIDSkipsCollision(t *testing.T) {
	ids := []string{"taken", "taken", "fresh"}
	next := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	s := newStore(conversation.WithMessageIDs(next))

	s.AddMessage(conversation.MessageInput{ID: "taken", Role: conversation.RoleUser, Content: "a"})
	id, err := s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "b"})
	if err != nil {
		t.Fatalf("AddMessage failed: %v", err)
	}
	if id != "fresh" {
		t.Errorf("id = %q, want %q", id, "fresh")
	}
}

func TestAddMessage_GeneratedIDsUnique(t *testing.T) {
	s := conversation.New(nil)

	seen := make(map[string]bool)
	for i := range 500 {
		id, err := s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: fmt.Sprintf("m%d", i)})
		if err != nil {
			t.Fatalf("AddMessage %d failed: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("id %q returned twice", id)
		}
		seen[id] = true
	}
}

func TestAddMessage_SingleNotification(t *testing.T) {
	s := newStore()

	var got []int
	s.Subscribe(func(c conversation.Conversation) { got = append(got, len(c.Messages)) })

	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})

	if diff := cmp.Diff([]int{0, 1}, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateMessage(t *testing.T) {
	s := newStore()
	id, _ := s.AddMessage(conversation.MessageInput{
		Role:     conversation.RoleAssistant,
		Content:  "partial",
		Metadata: conversation.MessageMetadata{Tokens: 12, Model: "m1"},
	})
	before, _ := s.MessageByID(id)

	streaming := conversation.StatusStreaming
	if err := s.UpdateMessage(id, conversation.MessagePatch{Status: &streaming}); err != nil {
		t.Fatalf("UpdateMessage failed: %v", err)
	}

	got, _ := s.MessageByID(id)
	if got.Status != conversation.StatusStreaming {
		t.Errorf("Status = %q, want %q", got.Status, conversation.StatusStreaming)
	}
	if got.Metadata.Tokens != 12 {
		t.Errorf("Tokens = %d, want 12", got.Metadata.Tokens)
	}
	if got.Content != "partial" {
		t.Errorf("Content = %q, want %q", got.Content, "partial")
	}
	if !got.Timestamp.After(before.Timestamp) {
		t.Errorf("Timestamp %v not refreshed past %v", got.Timestamp, before.Timestamp)
	}
	if c := s.Get(); !c.Metadata.UpdatedAt.Equal(got.Timestamp) {
		t.Errorf("UpdatedAt = %v, want %v", c.Metadata.UpdatedAt, got.Timestamp)
	}
}

func TestUpdateMessage_MergesMetadata(t *testing.T) {
	s := newStore()
	id, _ := s.AddMessage(conversation.MessageInput{
		Role:     conversation.RoleAssistant,
		Content:  "x",
		Metadata: conversation.MessageMetadata{Tokens: 3, Model: "m1", ProcessingTime: time.Second},
	})

	tokens := 40
	at := epoch.Add(time.Hour)
	err := s.UpdateMessage(id, conversation.MessagePatch{
		Timestamp: &at,
		Metadata:  &conversation.MessageMetadataPatch{Tokens: &tokens},
	})
	if err != nil {
		t.Fatalf("UpdateMessage failed: %v", err)
	}

	got, _ := s.MessageByID(id)
	want := conversation.MessageMetadata{Tokens: 40, Model: "m1", ProcessingTime: time.Second}
	if diff := cmp.Diff(want, got.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	if !got.Timestamp.Equal(at) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, at)
	}
}

func TestUpdateMessage_NotFound(t *testing.T) {
	s := newStore()
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})

	content := "x"
	err := s.UpdateMessage("no-such-id", conversation.MessagePatch{Content: &content})
	if !errors.Is(err, conversation.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	var nf *conversation.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "no-such-id" {
		t.Errorf("error = %#v, want NotFoundError for no-such-id", err)
	}
}

func TestUpdateMessage_InvalidPatch(t *testing.T) {
	s := newStore()
	id, _ := s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})
	before := s.Get()

	empty := ""
	bogus := conversation.Role("bogus")
	for _, patch := range []conversation.MessagePatch{
		{Content: &empty},
		{Role: &bogus},
	} {
		if err := s.UpdateMessage(id, patch); !errors.Is(err, conversation.ErrValidation) {
			t.Errorf("UpdateMessage(%+v) error = %v, want ErrValidation", patch, err)
		}
	}

	if diff := cmp.Diff(before, s.Get()); diff != "" {
		t.Errorf("store changed after invalid patch (-before +after):\n%s", diff)
	}
}

func TestRemoveMessage(t *testing.T) {
	s := newStore()
	a, _ := s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "a"})
	b, _ := s.AddMessage(conversation.MessageInput{Role: conversation.RoleAssistant, Content: "b"})

	if err := s.RemoveMessage(a); err != nil {
		t.Fatalf("RemoveMessage failed: %v", err)
	}

	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].ID != b {
		t.Errorf("Messages() = %v, want only %q", msgs, b)
	}
}

func TestRemoveMessage_AbsentIsNoOp(t *testing.T) {
	s := newStore()
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "a"})
	before := s.Get()

	notified := 0
	s.Subscribe(func(conversation.Conversation) { notified++ })
	notified = 0

	if err := s.RemoveMessage("missing"); err != nil {
		t.Fatalf("RemoveMessage failed: %v", err)
	}

	after := s.Get()
	if diff := cmp.Diff(before.Messages, after.Messages); diff != "" {
		t.Errorf("messages changed (-before +after):\n%s", diff)
	}
	if !after.Metadata.UpdatedAt.After(before.Metadata.UpdatedAt) {
		t.Error("UpdatedAt was not refreshed")
	}
	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
}

func TestClear_Idempotent(t *testing.T) {
	s := newStore()
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})
	s.SetLoading(true)

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	once := s.Get()

	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
	twice := s.Get()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second Clear changed state (-once +twice):\n%s", diff)
	}
	if once.ID != "" || len(once.Messages) != 0 || once.Loading {
		t.Errorf("Clear left state %+v, want initial", once)
	}
}

func TestClear_NextMessageStartsNewConversation(t *testing.T) {
	s := newStore()
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})
	first := s.Get().ID

	s.Clear()
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "again"})

	if second := s.Get().ID; second == "" || second == first {
		t.Errorf("conversation id after clear = %q, want new id distinct from %q", second, first)
	}
}

func TestSetters(t *testing.T) {
	s := newStore()

	title := "Renamed"

	if err := s.SetLoading(true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetError(errors.New("upstream failed")); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLatestMessageID("msg-9"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateMetadata(conversation.MetadataPatch{Title: &title}); err != nil {
		t.Fatal(err)
	}

	got := s.Get()
	if !got.Loading {
		t.Error("Loading = false, want true")
	}
	if got.Error != "upstream failed" {
		t.Errorf("Error = %q, want %q", got.Error, "upstream failed")
	}
	if got.LatestMessageID != "msg-9" {
		t.Errorf("LatestMessageID = %q, want %q", got.LatestMessageID, "msg-9")
	}
	if got.Metadata.Title != title {
		t.Errorf("Title = %q, want %q", got.Metadata.Title, title)
	}
	if got.Metadata.UpdatedAt.IsZero() {
		t.Error("UpdatedAt was not set")
	}

	s.SetError(nil)
	s.SetLatestMessageID("")
	if got := s.Get(); got.Error != "" || got.LatestMessageID != "" {
		t.Errorf("cleared fields = %q/%q, want empty", got.Error, got.LatestMessageID)
	}
}

func TestUpdateMetadata_KeepsCreatedAt(t *testing.T) {
	s := newStore()
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})
	created := s.Get().Metadata.CreatedAt

	title := "Renamed"
	if err := s.UpdateMetadata(conversation.MetadataPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateMetadata failed: %v", err)
	}
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleAssistant, Content: "hello"})
	s.SetLoading(true)

	got := s.Get().Metadata
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt = %v, want after %v", got.UpdatedAt, created)
	}
}

func TestSetters_OneNotificationEach(t *testing.T) {
	s := newStore()

	notified := 0
	s.Subscribe(func(conversation.Conversation) { notified++ })
	notified = 0

	s.SetLoading(true)
	s.SetError(nil)
	s.SetLatestMessageID("x")
	s.UpdateMetadata(conversation.MetadataPatch{})

	if notified != 4 {
		t.Errorf("notified %d times, want 4", notified)
	}
}

func TestReadHelpers_DoNotSubscribe(t *testing.T) {
	s := newStore()
	id, _ := s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})

	s.MessageByID(id)
	s.LatestMessage()
	s.MessageCount()
	s.Messages()

	if n := s.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d after reads, want 0", n)
	}
}

func TestLatestMessage(t *testing.T) {
	s := newStore()
	if _, ok := s.LatestMessage(); ok {
		t.Error("LatestMessage() on empty conversation reported a message")
	}

	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "a"})
	b, _ := s.AddMessage(conversation.MessageInput{Role: conversation.RoleAssistant, Content: "b"})

	if got, ok := s.LatestMessage(); !ok || got.ID != b {
		t.Errorf("LatestMessage() = %q, %v; want %q", got.ID, ok, b)
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	s := newStore()
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "a"})

	msgs := s.Messages()
	msgs[0].Content = "mutated"

	if got, _ := s.LatestMessage(); got.Content != "a" {
		t.Errorf("store content = %q after mutating copy, want %q", got.Content, "a")
	}
}

func TestReentrantMutation(t *testing.T) {
	s := newStore()

	var inner error
	s.Subscribe(func(c conversation.Conversation) {
		if len(c.Messages) == 1 && inner == nil {
			_, inner = s.AddMessage(conversation.MessageInput{Role: conversation.RoleAssistant, Content: "echo"})
		}
	})

	if _, err := s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"}); err != nil {
		t.Fatalf("outer AddMessage failed: %v", err)
	}
	if !errors.Is(inner, store.ErrReentrant) {
		t.Errorf("inner error = %v, want ErrReentrant", inner)
	}
	if s.MessageCount() != 1 {
		t.Errorf("MessageCount() = %d, want 1", s.MessageCount())
	}
}

func TestState_IsDerivable(t *testing.T) {
	s := newStore()
	count := store.Derive(s.State(), func(c conversation.Conversation) int { return len(c.Messages) })

	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "a"})
	s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "b"})

	if got := count.Get(); got != 2 {
		t.Errorf("derived count = %d, want 2", got)
	}
}

func TestEvents(t *testing.T) {
	var events []observability.Event
	s := newStore(conversation.WithObserver(&captureObserver{events: &events}))

	id, _ := s.AddMessage(conversation.MessageInput{Role: conversation.RoleUser, Content: "hi"})
	s.AddMessage(conversation.MessageInput{Role: "bogus", Content: "x"})
	s.RemoveMessage(id)
	s.Clear()

	want := []observability.EventType{
		conversation.EventStart,
		conversation.EventMessageAdd,
		conversation.EventMessageInvalid,
		conversation.EventMessageRemove,
		conversation.EventClear,
	}
	var got []observability.EventType
	for _, e := range events {
		if strings.HasPrefix(string(e.Type), "conversation.") {
			got = append(got, e.Type)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

type captureObserver struct {
	events *[]observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	*c.events = append(*c.events, event)
}
