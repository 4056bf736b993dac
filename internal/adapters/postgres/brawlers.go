package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/oatrn/brawlhq/internal/domain"
)

type BrawlerRepository struct {
	db *sqlx.DB
}

func NewBrawlerRepository(db *sqlx.DB) *BrawlerRepository {
	return &BrawlerRepository{db: db}
}

func (r *BrawlerRepository) Create(ctx context.Context, username, passwordHash, displayName, email string) (domain.Brawler, error) {
	const query = `
		INSERT INTO brawlers (username, password_hash, display_name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, display_name,
		          COALESCE(email, '') AS email,
		          COALESCE(avatar_url, '') AS avatar_url,
		          created_at, updated_at`

	var brawler domain.Brawler
	err := r.db.GetContext(ctx, &brawler, query, username, passwordHash, displayName, nullable(email))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return domain.Brawler{}, domain.ErrUsernameTaken
		}
		return domain.Brawler{}, fmt.Errorf("insert brawler: %w", err)
	}
	return brawler, nil
}

func (r *BrawlerRepository) FindByUsername(ctx context.Context, username string) (domain.Brawler, error) {
	const query = `
		SELECT id, username, password_hash, display_name,
		       COALESCE(email, '') AS email,
		       COALESCE(avatar_url, '') AS avatar_url,
		       created_at, updated_at
		FROM brawlers
		WHERE username = $1`

	var brawler domain.Brawler
	if err := r.db.GetContext(ctx, &brawler, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Brawler{}, domain.ErrNotFound
		}
		return domain.Brawler{}, fmt.Errorf("find brawler: %w", err)
	}
	return brawler, nil
}

func (r *BrawlerRepository) SetAvatarURL(ctx context.Context, id domain.BrawlerID, url string) error {
	const query = `UPDATE brawlers SET avatar_url = $2, updated_at = NOW() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, url)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
