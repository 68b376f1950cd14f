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

// TaskService coordinates task workflows. Every operation is scoped to the
// calling user; a task owned by someone else is indistinguishable from a
// missing one.
type TaskService struct {
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	AssignedBy  string
	DueDate     time.Time
	Progress    *int
}

// TaskUpdateInput describes a partial task update. Nil fields are left
// untouched.
type TaskUpdateInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	AssignedBy  *string
	DueDate     *time.Time
	Progress    *int
}

// NewTaskService constructs the service.
func NewTaskService(tasks repository.TaskRepository, dispatcher events.Dispatcher) *TaskService {
	return &TaskService{tasks: tasks, dispatcher: dispatcher}
}

// List returns all tasks owned by the caller.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

// Create creates a task owned by the caller. Any client-supplied owner is
// ignored.
func (s *TaskService) Create(ctx context.Context, ownerID string, input TaskCreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if strings.TrimSpace(input.AssignedBy) == "" {
		return nil, apperrors.NewValidationError("assignedBy is required", nil)
	}
	if input.DueDate.IsZero() {
		return nil, apperrors.NewValidationError("dueDate is required", nil)
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !domain.ValidTaskStatus(status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}

	progress := 0
	if input.Progress != nil {
		progress = *input.Progress
	}
	if progress < 0 || progress > 100 {
		return nil, apperrors.NewValidationError("progress must be between 0 and 100", map[string]any{"progress": progress})
	}

	task := &domain.Task{
		Title:       title,
		Description: input.Description,
		Status:      status,
		AssignedBy:  input.AssignedBy,
		UserID:      ownerID,
		DueDate:     input.DueDate,
		Progress:    progress,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, ownerID, events.EventTaskCreated, events.TaskCreatedPayload{
		TaskID:     task.ID,
		Title:      task.Title,
		Status:     task.Status,
		AssignedBy: task.AssignedBy,
	})
	return task, nil
}

// Update merges the provided fields into the caller's task.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, input TaskUpdateInput) (*domain.Task, error) {
	task, err := s.tasks.GetByIDForOwner(ctx, taskID, ownerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Task", nil)
		}
		return nil, err
	}
	oldStatus := task.Status

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title is required", nil)
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !domain.ValidTaskStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		task.Status = *input.Status
	}
	if input.AssignedBy != nil {
		if strings.TrimSpace(*input.AssignedBy) == "" {
			return nil, apperrors.NewValidationError("assignedBy is required", nil)
		}
		task.AssignedBy = *input.AssignedBy
	}
	if input.DueDate != nil {
		if input.DueDate.IsZero() {
			return nil, apperrors.NewValidationError("dueDate is required", nil)
		}
		task.DueDate = *input.DueDate
	}
	if input.Progress != nil {
		if *input.Progress < 0 || *input.Progress > 100 {
			return nil, apperrors.NewValidationError("progress must be between 0 and 100", map[string]any{"progress": *input.Progress})
		}
		task.Progress = *input.Progress
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Task", nil)
		}
		return nil, err
	}

	s.publishEvent(ctx, ownerID, events.EventTaskUpdated, events.TaskUpdatedPayload{
		TaskID:    task.ID,
		OldStatus: oldStatus,
		NewStatus: task.Status,
		Progress:  task.Progress,
	})
	return task, nil
}

// Delete removes the caller's task.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if err := s.tasks.DeleteForOwner(ctx, taskID, ownerID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Task", nil)
		}
		return err
	}
	s.publishEvent(ctx, ownerID, events.EventTaskDeleted, events.TaskDeletedPayload{TaskID: taskID})
	return nil
}

func (s *TaskService) publishEvent(ctx context.Context, actorID string, eventType events.EventType, payload interface{}) {
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
