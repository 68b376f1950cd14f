package domain

import "time"

// Message is a direct message between two users. Messages are immutable once
// created; either participant may delete one, which removes it for both.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Content    string
	CreatedAt  time.Time
}

// MessageUser carries the display fields of a message participant.
type MessageUser struct {
	ID     string
	Name   string
	Avatar string
}

// ExpandedMessage couples a message with both participants' display info, the
// shape returned by the messages API.
type ExpandedMessage struct {
	Message
	Sender   MessageUser
	Receiver MessageUser
}
