package conversation

import (
	"slices"
	"time"
)

// Metadata describes the conversation as a whole.
type Metadata struct {
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MetadataPatch is a partial update of Metadata. CreatedAt is fixed by the
// first message and UpdatedAt by every change, so neither is patchable.
type MetadataPatch struct {
	Title *string
}

// Conversation is the value held by the conversation store. Empty strings and
// zero times stand for "not set": ID stays empty until the first message
// arrives and is then fixed until Clear.
//
// Values handed to subscribers share their Messages backing array with the
// store; treat them as read-only.
type Conversation struct {
	ID              string    `json:"id"`
	Messages        []Message `json:"messages"`
	LatestMessageID string    `json:"latest_message_id"`
	Loading         bool      `json:"loading"`
	Error           string    `json:"error"`
	Metadata        Metadata  `json:"metadata"`
}

func initial(title string) Conversation {
	return Conversation{
		Messages: []Message{},
		Metadata: Metadata{Title: title},
	}
}

// IndexOf returns the position of the message with id, or -1.
func (c Conversation) IndexOf(id string) int {
	return slices.IndexFunc(c.Messages, func(m Message) bool { return m.ID == id })
}

// Find returns the message with id.
func (c Conversation) Find(id string) (Message, bool) {
	idx := c.IndexOf(id)
	if idx < 0 {
		return Message{}, false
	}
	return c.Messages[idx], true
}

// Latest returns the most recently appended message.
func (c Conversation) Latest() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Filter returns the messages matching keep, in conversation order.
func (c Conversation) Filter(keep func(Message) bool) []Message {
	matched := make([]Message, 0)
	for _, m := range c.Messages {
		if keep(m) {
			matched = append(matched, m)
		}
	}
	return matched
}
