package conversation

import (
	"slices"
	"strconv"
	"time"
)

// Role identifies the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

var roles = []Role{RoleUser, RoleAssistant, RoleSystem}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return slices.Contains(roles, r)
}

// Status tracks the lifecycle of a message.
type Status string

const (
	StatusComplete  Status = "complete"
	StatusStreaming Status = "streaming"
	StatusError     Status = "error"
)

var statuses = []Status{StatusComplete, StatusStreaming, StatusError}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(statuses, s)
}

// MessageMetadata carries generation statistics for a message.
type MessageMetadata struct {
	Tokens         int           `json:"tokens"`
	Model          string        `json:"model"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// Message is a single entry in the conversation.
type Message struct {
	ID        string          `json:"id"`
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	Timestamp time.Time       `json:"timestamp"`
	Status    Status          `json:"status"`
	Metadata  MessageMetadata `json:"metadata"`
}

// MessageInput is the caller-supplied shape for AddMessage. Zero values
// mean "use the default": a generated id, the current time, StatusComplete,
// and the configured default model.
type MessageInput struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Status    Status
	Metadata  MessageMetadata
}

func (in MessageInput) validate() error {
	if in.Content == "" {
		return &ValidationError{Field: "content", Reason: "must be a non-empty string"}
	}
	if !in.Role.Valid() {
		return &ValidationError{Field: "role", Reason: "must be one of user, assistant, system: got " + strconv.Quote(string(in.Role))}
	}
	if in.Status != "" && !in.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be one of complete, streaming, error: got " + strconv.Quote(string(in.Status))}
	}
	if in.Metadata.Tokens < 0 {
		return &ValidationError{Field: "metadata.tokens", Reason: "must not be negative"}
	}
	if in.Metadata.ProcessingTime < 0 {
		return &ValidationError{Field: "metadata.processing_time", Reason: "must not be negative"}
	}
	return nil
}

// MessagePatch is a partial update. Nil fields are left unchanged; Metadata
// is merged key by key. A nil Timestamp refreshes the message to now.
type MessagePatch struct {
	Role      *Role
	Content   *string
	Status    *Status
	Timestamp *time.Time
	Metadata  *MessageMetadataPatch
}

// MessageMetadataPatch is a partial update of MessageMetadata.
type MessageMetadataPatch struct {
	Tokens         *int
	Model          *string
	ProcessingTime *time.Duration
}

func (p MessagePatch) validate() error {
	if p.Content != nil && *p.Content == "" {
		return &ValidationError{Field: "content", Reason: "must be a non-empty string"}
	}
	if p.Role != nil && !p.Role.Valid() {
		return &ValidationError{Field: "role", Reason: "must be one of user, assistant, system: got " + strconv.Quote(string(*p.Role))}
	}
	if p.Status != nil && !p.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be one of complete, streaming, error: got " + strconv.Quote(string(*p.Status))}
	}
	if m := p.Metadata; m != nil {
		if m.Tokens != nil && *m.Tokens < 0 {
			return &ValidationError{Field: "metadata.tokens", Reason: "must not be negative"}
		}
		if m.ProcessingTime != nil && *m.ProcessingTime < 0 {
			return &ValidationError{Field: "metadata.processing_time", Reason: "must not be negative"}
		}
	}
	return nil
}

func (p MessagePatch) apply(msg Message, now time.Time) Message {
	if p.Role != nil {
		msg.Role = *p.Role
	}
	if p.Content != nil {
		msg.Content = *p.Content
	}
	if p.Status != nil {
		msg.Status = *p.Status
	}
	if m := p.Metadata; m != nil {
		if m.Tokens != nil {
			msg.Metadata.Tokens = *m.Tokens
		}
		if m.Model != nil {
			msg.Metadata.Model = *m.Model
		}
		if m.ProcessingTime != nil {
			msg.Metadata.ProcessingTime = *m.ProcessingTime
		}
	}

	msg.Timestamp = now
	if p.Timestamp != nil {
		msg.Timestamp = *p.Timestamp
	}
	return msg
}
