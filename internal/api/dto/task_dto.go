package dto

import (
	"time"

	"github.com/iayeshaabid-21/productivity-app/internal/domain"
)

// CreateTaskRequest payload for creating a task. Any userId supplied by the
// client is ignored; the owner is always the authenticated caller.
type CreateTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	AssignedBy  string            `json:"assignedBy"`
	DueDate     string            `json:"dueDate"`
	Progress    *int              `json:"progress"`
}

// UpdateTaskRequest payload for a partial task update. Absent fields are left
// untouched.
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *domain.TaskStatus `json:"status"`
	AssignedBy  *string            `json:"assignedBy"`
	DueDate     *string            `json:"dueDate"`
	Progress    *int               `json:"progress"`
}

// TaskResponse is the wire shape of a task.
type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	AssignedBy  string            `json:"assignedBy"`
	UserID      string            `json:"userId"`
	DueDate     time.Time         `json:"dueDate"`
	Progress    int               `json:"progress"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
