package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iayeshaabid-21/productivity-app/internal/domain"
)

// TaskRepository encapsulates task persistence. Every read and write is
// scoped by the owning user ID, so a task owned by someone else scans the
// same as a missing row.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	DeleteForOwner(ctx context.Context, id, ownerID string) error
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, description, status, assigned_by, user_id, due_date, progress)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.AssignedBy,
		task.UserID,
		task.DueDate,
		task.Progress,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, description=$2, status=$3, assigned_by=$4, due_date=$5,
            progress=$6, updated_at=NOW()
        WHERE id=$7 AND user_id=$8
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.AssignedBy,
		task.DueDate,
		task.Progress,
		task.ID,
		task.UserID,
	).Scan(&task.UpdatedAt)
}

func (r *taskRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
        SELECT id, title, description, status, assigned_by, user_id, due_date, progress, created_at, updated_at
        FROM tasks WHERE id=$1 AND user_id=$2`

	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.AssignedBy,
		&task.UserID,
		&task.DueDate,
		&task.Progress,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	const query = `
        SELECT id, title, description, status, assigned_by, user_id, due_date, progress, created_at, updated_at
        FROM tasks WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.AssignedBy,
			&task.UserID,
			&task.DueDate,
			&task.Progress,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

func (r *taskRepository) DeleteForOwner(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM tasks WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
