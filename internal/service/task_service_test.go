package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iayeshaabid-21/productivity-app/internal/domain"
	apperrors "github.com/iayeshaabid-21/productivity-app/pkg/util"
)

type stubTaskRepository struct {
	nextID int
	tasks  []domain.Task
}

func (s *stubTaskRepository) Create(_ context.Context, task *domain.Task) error {
	s.nextID++
	task.ID = fmt.Sprintf("task-%d", s.nextID)
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	s.tasks = append(s.tasks, *task)
	return nil
}

func (s *stubTaskRepository) Update(_ context.Context, task *domain.Task) error {
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID && s.tasks[i].UserID == task.UserID {
			task.UpdatedAt = time.Now()
			s.tasks[i] = *task
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (s *stubTaskRepository) GetByIDForOwner(_ context.Context, id, ownerID string) (*domain.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id && s.tasks[i].UserID == ownerID {
			task := s.tasks[i]
			return &task, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubTaskRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	var result []domain.Task
	for i := len(s.tasks) - 1; i >= 0; i-- {
		if s.tasks[i].UserID == ownerID {
			result = append(result, s.tasks[i])
		}
	}
	return result, nil
}

func (s *stubTaskRepository) DeleteForOwner(_ context.Context, id, ownerID string) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id && s.tasks[i].UserID == ownerID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func domainErrorCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return domainErr.Code
}

func TestCreateTaskAppliesDefaultsAndOwner(t *testing.T) {
	repo := &stubTaskRepository{}
	svc := NewTaskService(repo, nil)

	task, err := svc.Create(context.Background(), "user-1", TaskCreateInput{
		Title:      "  Write report  ",
		AssignedBy: "self",
		DueDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.UserID != "user-1" {
		t.Fatalf("expected owner user-1, got %q", task.UserID)
	}
	if task.Title != "Write report" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Status != domain.TaskStatusPending {
		t.Fatalf("expected default status pending, got %q", task.Status)
	}
	if task.Progress != 0 {
		t.Fatalf("expected default progress 0, got %d", task.Progress)
	}
	if task.Description != "" {
		t.Fatalf("expected empty description, got %q", task.Description)
	}

	list, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != task.ID {
		t.Fatalf("expected exactly the created task, got %+v", list)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	repo := &stubTaskRepository{}
	svc := NewTaskService(repo, nil)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input TaskCreateInput
	}{
		{"missing title", TaskCreateInput{AssignedBy: "self", DueDate: due}},
		{"blank title", TaskCreateInput{Title: "   ", AssignedBy: "self", DueDate: due}},
		{"missing assignedBy", TaskCreateInput{Title: "x", DueDate: due}},
		{"missing dueDate", TaskCreateInput{Title: "x", AssignedBy: "self"}},
		{"unknown status", TaskCreateInput{Title: "x", AssignedBy: "self", DueDate: due, Status: "done"}},
		{"progress too high", TaskCreateInput{Title: "x", AssignedBy: "self", DueDate: due, Progress: intPtr(150)}},
		{"progress negative", TaskCreateInput{Title: "x", AssignedBy: "self", DueDate: due, Progress: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if code := domainErrorCode(t, err); code != "VALIDATION_FAILED" {
				t.Fatalf("expected VALIDATION_FAILED, got %s", code)
			}
		})
	}
	if len(repo.tasks) != 0 {
		t.Fatalf("no task should have been persisted, got %d", len(repo.tasks))
	}
}

func TestUpdateTaskMergesPartialFields(t *testing.T) {
	repo := &stubTaskRepository{}
	svc := NewTaskService(repo, nil)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	task, err := svc.Create(context.Background(), "user-1", TaskCreateInput{
		Title: "Initial", Description: "keep me", AssignedBy: "self", DueDate: due,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	status := domain.TaskStatusCompleted
	progress := 40
	updated, err := svc.Update(context.Background(), "user-1", task.ID, TaskUpdateInput{
		Status:   &status,
		Progress: &progress,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != domain.TaskStatusCompleted {
		t.Fatalf("expected status completed, got %q", updated.Status)
	}
	if updated.Progress != 40 {
		t.Fatalf("expected progress 40, got %d", updated.Progress)
	}
	if updated.Description != "keep me" || updated.Title != "Initial" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateTaskRejectsOutOfRangeProgress(t *testing.T) {
	repo := &stubTaskRepository{}
	svc := NewTaskService(repo, nil)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	task, _ := svc.Create(context.Background(), "user-1", TaskCreateInput{
		Title: "x", AssignedBy: "self", DueDate: due,
	})

	progress := 150
	_, err := svc.Update(context.Background(), "user-1", task.ID, TaskUpdateInput{Progress: &progress})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if code := domainErrorCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestUpdateTaskForeignOwnerIsNotFound(t *testing.T) {
	repo := &stubTaskRepository{}
	svc := NewTaskService(repo, nil)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	task, _ := svc.Create(context.Background(), "user-1", TaskCreateInput{
		Title: "x", AssignedBy: "self", DueDate: due,
	})

	title := "hijacked"
	_, err := svc.Update(context.Background(), "user-2", task.ID, TaskUpdateInput{Title: &title})
	if err == nil {
		t.Fatal("expected error for foreign owner")
	}
	if code := domainErrorCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestDeleteTaskTwice(t *testing.T) {
	repo := &stubTaskRepository{}
	svc := NewTaskService(repo, nil)
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	task, _ := svc.Create(context.Background(), "user-1", TaskCreateInput{
		Title: "x", AssignedBy: "self", DueDate: due,
	})

	if err := svc.Delete(context.Background(), "user-1", task.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	err := svc.Delete(context.Background(), "user-1", task.ID)
	if err == nil {
		t.Fatal("expected second delete to fail")
	}
	if code := domainErrorCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func intPtr(v int) *int { return &v }
