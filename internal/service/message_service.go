package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/iayeshaabid-21/productivity-app/internal/domain"
	"github.com/iayeshaabid-21/productivity-app/internal/events"
	"github.com/iayeshaabid-21/productivity-app/internal/repository"
	apperrors "github.com/iayeshaabid-21/productivity-app/pkg/util"
)

// MessageService coordinates direct-message workflows. Persistence here is
// independent of the realtime relay; clients call both.
type MessageService struct {
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, dispatcher: dispatcher}
}

// List returns every message the caller sent or received, newest first, with
// both participants expanded.
func (s *MessageService) List(ctx context.Context, userID string) ([]domain.ExpandedMessage, error) {
	return s.messages.ListForParticipant(ctx, userID)
}

// Create persists a message from the caller to the given receiver and
// returns it expanded with both participants' display info.
func (s *MessageService) Create(ctx context.Context, senderID, receiverID, content string) (*domain.ExpandedMessage, error) {
	if strings.TrimSpace(receiverID) == "" {
		return nil, apperrors.NewValidationError("receiverId is required", nil)
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content is required", nil)
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	expanded, err := s.messages.GetExpanded(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, senderID, events.EventMessageCreated, events.MessageCreatedPayload{
		MessageID:      expanded.ID,
		ReceiverID:     expanded.ReceiverID,
		ContentPreview: preview(expanded.Content),
	})
	return expanded, nil
}

// Delete removes a message if the caller is its sender or receiver. The
// delete is unconditional and removes the message for both participants.
func (s *MessageService) Delete(ctx context.Context, userID, messageID string) error {
	if err := s.messages.DeleteForParticipant(ctx, messageID, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Message", nil)
		}
		return err
	}
	s.publishEvent(ctx, userID, events.EventMessageDeleted, events.MessageDeletedPayload{MessageID: messageID})
	return nil
}

func (s *MessageService) publishEvent(ctx context.Context, actorID string, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func preview(content string) string {
	const max = 80
	if len(content) <= max {
		return content
	}
	return content[:max]
}
