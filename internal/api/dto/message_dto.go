package dto

import "time"

// CreateMessageRequest payload for sending a message.
type CreateMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// MessageParticipant carries the display fields of a sender or receiver.
type MessageParticipant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// MessageResponse is the wire shape of an expanded message. The sender and
// receiver fields carry display info the same way the list endpoint expands
// them.
type MessageResponse struct {
	ID        string             `json:"id"`
	Sender    MessageParticipant `json:"senderId"`
	Receiver  MessageParticipant `json:"receiverId"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"createdAt"`
}
