package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iayeshaabid-21/productivity-app/internal/api/dto"
	"github.com/iayeshaabid-21/productivity-app/internal/auth"
	"github.com/iayeshaabid-21/productivity-app/internal/repository"
	apperrors "github.com/iayeshaabid-21/productivity-app/pkg/util"
)

// UsersHandler lists accounts available as message contacts.
type UsersHandler struct {
	users repository.UserRepository
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users repository.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /api/users. Returns every user except the caller.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	users, err := h.users.ListExcept(c.UserContext(), principal.User.ID)
	if err != nil {
		return apperrors.MapError(err)
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(items)
}
