package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oatrn/brawlhq/internal/domain"
)

// MessageRepository is the durable side of mission chat. Append must have
// returned before any broadcast of the message happens; the relay depends
// on that ordering.
type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Append(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID, content string) (domain.MissionMessage, error) {
	const query = `
		INSERT INTO mission_messages (mission_id, brawler_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, mission_id, brawler_id, content, created_at`

	var msg domain.MissionMessage
	if err := r.db.GetContext(ctx, &msg, query, missionID, brawlerID, content); err != nil {
		return domain.MissionMessage{}, fmt.Errorf("insert message: %w", err)
	}
	return msg, nil
}

// Recent returns the newest messages, oldest first, so clients can render
// the tail top-down.
func (r *MessageRepository) Recent(ctx context.Context, missionID domain.MissionID, limit int) ([]domain.MissionMessage, error) {
	const query = `
		SELECT id, mission_id, brawler_id, content, created_at
		FROM (
			SELECT id, mission_id, brawler_id, content, created_at
			FROM mission_messages
			WHERE mission_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) tail
		ORDER BY created_at ASC, id ASC`

	msgs := []domain.MissionMessage{}
	if err := r.db.SelectContext(ctx, &msgs, query, missionID, limit); err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	return msgs, nil
}
