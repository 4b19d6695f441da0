package conversation

import (
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewMessageID returns a ULID: a millisecond timestamp followed by monotonic
// entropy, so ids minted in the same millisecond still differ and sort in
// creation order.
func NewMessageID() string {
	return strings.ToLower(ulid.Make().String())
}

// NewConversationID returns a UUIDv7.
func NewConversationID() string {
	return uuid.Must(uuid.NewV7()).String()
}
