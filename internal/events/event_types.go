package events

import (
	"time"

	"github.com/iayeshaabid-21/productivity-app/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated    EventType = "task_created"
	EventTaskUpdated    EventType = "task_updated"
	EventTaskDeleted    EventType = "task_deleted"
	EventMessageCreated EventType = "message_created"
	EventMessageDeleted EventType = "message_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID     string            `json:"task_id"`
	Title      string            `json:"title"`
	Status     domain.TaskStatus `json:"status"`
	AssignedBy string            `json:"assigned_by"`
}

// TaskUpdatedPayload payload.
type TaskUpdatedPayload struct {
	TaskID    string            `json:"task_id"`
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
	Progress  int               `json:"progress"`
}

// TaskDeletedPayload payload.
type TaskDeletedPayload struct {
	TaskID string `json:"task_id"`
}

// MessageCreatedPayload payload.
type MessageCreatedPayload struct {
	MessageID      string `json:"message_id"`
	ReceiverID     string `json:"receiver_id"`
	ContentPreview string `json:"content_preview"`
}

// MessageDeletedPayload payload.
type MessageDeletedPayload struct {
	MessageID string `json:"message_id"`
}
