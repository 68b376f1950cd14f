package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusClosed     TaskStatus = "closed"
)

// ValidTaskStatus reports whether s is a known status value.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusClosed:
		return true
	}
	return false
}

// Task is a single to-do item owned by exactly one user. Status and progress
// are independent fields; a completed task is not forced to progress 100.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	AssignedBy  string
	UserID      string
	DueDate     time.Time
	Progress    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
