// Package conversation holds the chat transcript as an observable store.
//
// Messages are created only through Store.AddMessage, which validates input,
// assigns an id and timestamp, and fills every default in one place. They
// change only through UpdateMessage (a partial merge) and leave only through
// RemoveMessage or Clear. Every operation is a single store notification.
//
//	conv := conversation.New(nil)
//	id, err := conv.AddMessage(conversation.MessageInput{
//	    Role:    conversation.RoleUser,
//	    Content: "hi",
//	})
package conversation
