package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/iayeshaabid-21/productivity-app/internal/api/dto"
	"github.com/iayeshaabid-21/productivity-app/internal/auth"
	"github.com/iayeshaabid-21/productivity-app/internal/domain"
	"github.com/iayeshaabid-21/productivity-app/internal/service"
	apperrors "github.com/iayeshaabid-21/productivity-app/pkg/util"
)

// TasksHandler manages the caller's task endpoints.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// List GET /api/tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	tasks, err := h.service.List(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, taskResponse(&tasks[i]))
	}
	return c.JSON(items)
}

// Create POST /api/tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := parseDueDate(req.DueDate)
		if err != nil {
			return apperrors.NewValidationError("invalid dueDate", map[string]any{"dueDate": req.DueDate})
		}
		dueDate = parsed
	}

	input := service.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedBy:  req.AssignedBy,
		DueDate:     dueDate,
		Progress:    req.Progress,
	}
	task, err := h.service.Create(c.UserContext(), principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(taskResponse(task))
}

// Update PUT /api/tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TaskUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedBy:  req.AssignedBy,
		Progress:    req.Progress,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return apperrors.NewValidationError("invalid dueDate", map[string]any{"dueDate": *req.DueDate})
		}
		input.DueDate = &dueDate
	}

	task, err := h.service.Update(c.UserContext(), principal.User.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(taskResponse(task))
}

// Delete DELETE /api/tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.Delete(c.UserContext(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Task deleted"})
}

// parseDueDate accepts RFC3339 timestamps and bare dates.
func parseDueDate(val string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", val)
}

func taskResponse(task *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		AssignedBy:  task.AssignedBy,
		UserID:      task.UserID,
		DueDate:     task.DueDate,
		Progress:    task.Progress,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
