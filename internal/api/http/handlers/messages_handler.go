package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/iayeshaabid-21/productivity-app/internal/api/dto"
	"github.com/iayeshaabid-21/productivity-app/internal/auth"
	"github.com/iayeshaabid-21/productivity-app/internal/domain"
	"github.com/iayeshaabid-21/productivity-app/internal/service"
	apperrors "github.com/iayeshaabid-21/productivity-app/pkg/util"
)

// MessagesHandler manages the caller's direct-message endpoints.
type MessagesHandler struct {
	service *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{service: messageService}
}

// List GET /api/messages.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	messages, err := h.service.List(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, messageResponse(&messages[i]))
	}
	return c.JSON(items)
}

// Create POST /api/messages.
func (h *MessagesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	msg, err := h.service.Create(c.UserContext(), principal.User.ID, req.ReceiverID, req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(messageResponse(msg))
}

// Delete DELETE /api/messages/:id.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.Delete(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Message deleted"})
}

func messageResponse(msg *domain.ExpandedMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID: msg.ID,
		Sender: dto.MessageParticipant{
			ID:     msg.Sender.ID,
			Name:   msg.Sender.Name,
			Avatar: msg.Sender.Avatar,
		},
		Receiver: dto.MessageParticipant{
			ID:     msg.Receiver.ID,
			Name:   msg.Receiver.Name,
			Avatar: msg.Receiver.Avatar,
		},
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
