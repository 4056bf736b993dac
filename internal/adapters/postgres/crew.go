package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/oatrn/brawlhq/internal/domain"
)

type CrewRepository struct {
	db *sqlx.DB
}

func NewCrewRepository(db *sqlx.DB) *CrewRepository {
	return &CrewRepository{db: db}
}

func (r *CrewRepository) Join(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID) error {
	const query = `INSERT INTO crew_memberships (mission_id, brawler_id) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, missionID, brawlerID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.ErrAlreadyCrew
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *CrewRepository) Leave(ctx context.Context, missionID domain.MissionID, brawlerID domain.BrawlerID) error {
	const query = `DELETE FROM crew_memberships WHERE mission_id = $1 AND brawler_id = $2`

	res, err := r.db.ExecContext(ctx, query, missionID, brawlerID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotCrew
	}
	return nil
}
