package conversation_test

import (
	"testing"

	"github.com/tailored-agentic-units/assistant-state/conversation"
)

func TestRole_Valid(t *testing.T) {
	tests := []struct {
		role conversation.Role
		want bool
	}{
		{conversation.RoleUser, true},
		{conversation.RoleAssistant, true},
		{conversation.RoleSystem, true},
		{"", false},
		{"User", false},
		{"tool", false},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.want {
			t.Errorf("Role(%q).Valid() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status conversation.Status
		want   bool
	}{
		{conversation.StatusComplete, true},
		{conversation.StatusStreaming, true},
		{conversation.StatusError, true},
		{"", false},
		{"pending", false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestConversation_Filter(t *testing.T) {
	c := conversation.Conversation{Messages: []conversation.Message{
		{ID: "1", Role: conversation.RoleUser},
		{ID: "2", Role: conversation.RoleAssistant},
		{ID: "3", Role: conversation.RoleUser},
	}}

	users := c.Filter(func(m conversation.Message) bool { return m.Role == conversation.RoleUser })
	if len(users) != 2 || users[0].ID != "1" || users[1].ID != "3" {
		t.Errorf("Filter(user) = %v, want ids 1 and 3", users)
	}

	none := c.Filter(func(conversation.Message) bool { return false })
	if none == nil || len(none) != 0 {
		t.Errorf("Filter(none) = %#v, want empty non-nil slice", none)
	}

	if idx := c.IndexOf("2"); idx != 1 {
		t.Errorf("IndexOf(2) = %d, want 1", idx)
	}
	if _, ok := c.Find("missing"); ok {
		t.Error("Find(missing) reported a message")
	}
}

func TestIDs(t *testing.T) {
	a, b := conversation.NewMessageID(), conversation.NewMessageID()
	if a == "" || a == b {
		t.Errorf("NewMessageID() returned %q then %q, want distinct non-empty ids", a, b)
	}
	if a > b {
		t.Errorf("message ids not monotonic: %q > %q", a, b)
	}

	c, d := conversation.NewConversationID(), conversation.NewConversationID()
	if c == "" || c == d {
		t.Errorf("NewConversationID() returned %q then %q, want distinct non-empty ids", c, d)
	}
}
