package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iayeshaabid-21/productivity-app/internal/domain"
)

// MessageRepository encapsulates message persistence. Visibility is always
// scoped to a participant: the caller must be sender or receiver.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetExpanded(ctx context.Context, id string) (*domain.ExpandedMessage, error)
	ListForParticipant(ctx context.Context, userID string) ([]domain.ExpandedMessage, error)
	DeleteForParticipant(ctx context.Context, id, userID string) error
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository returns a Postgres-backed implementation.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const query = `
        INSERT INTO messages (sender_id, receiver_id, content)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.SenderID,
		msg.ReceiverID,
		msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt)
}

const expandedSelect = `
        SELECT m.id, m.sender_id, m.receiver_id, m.content, m.created_at,
               s.id, s.name, s.avatar,
               rc.id, rc.name, rc.avatar
        FROM messages m
        JOIN users s ON s.id = m.sender_id
        JOIN users rc ON rc.id = m.receiver_id`

func (r *messageRepository) GetExpanded(ctx context.Context, id string) (*domain.ExpandedMessage, error) {
	query := expandedSelect + ` WHERE m.id=$1`

	var msg domain.ExpandedMessage
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.ReceiverID,
		&msg.Content,
		&msg.CreatedAt,
		&msg.Sender.ID,
		&msg.Sender.Name,
		&msg.Sender.Avatar,
		&msg.Receiver.ID,
		&msg.Receiver.Name,
		&msg.Receiver.Avatar,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) ListForParticipant(ctx context.Context, userID string) ([]domain.ExpandedMessage, error) {
	query := expandedSelect + `
        WHERE m.sender_id=$1 OR m.receiver_id=$1
        ORDER BY m.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ExpandedMessage
	for rows.Next() {
		var msg domain.ExpandedMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.SenderID,
			&msg.ReceiverID,
			&msg.Content,
			&msg.CreatedAt,
			&msg.Sender.ID,
			&msg.Sender.Name,
			&msg.Sender.Avatar,
			&msg.Receiver.ID,
			&msg.Receiver.Name,
			&msg.Receiver.Avatar,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (r *messageRepository) DeleteForParticipant(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM messages WHERE id=$1 AND (sender_id=$2 OR receiver_id=$2)`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
