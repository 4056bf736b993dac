package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/oatrn/brawlhq/internal/domain"
)

// missionColumns is the shared projection for mission rows: the missions
// table joined with the chief's display name and the crew count.
const missionColumns = `
	SELECT
		m.id,
		m.name,
		COALESCE(m.description, '') AS description,
		m.status,
		m.chief_id,
		COALESCE(b.display_name, '') AS chief_display_name,
		COALESCE(m.image_url, '') AS image_url,
		COALESCE(cm.cnt, 0) AS crew_count,
		m.created_at,
		m.updated_at
	FROM missions m
	LEFT JOIN brawlers b ON b.id = m.chief_id
	LEFT JOIN (
		SELECT mission_id, COUNT(*) AS cnt
		FROM crew_memberships
		GROUP BY mission_id
	) cm ON cm.mission_id = m.id`

type MissionRepository struct {
	db *sqlx.DB
}

func NewMissionRepository(db *sqlx.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

func (r *MissionRepository) GetAll(ctx context.Context, filter domain.MissionFilter) ([]domain.Mission, error) {
	query := missionColumns + `
	WHERE m.deleted_at IS NULL
	  AND ($1::varchar IS NULL OR m.status = $1)
	  AND ($2::varchar IS NULL OR m.name ILIKE $2)
	ORDER BY m.created_at DESC`

	var status, name sql.NullString
	if filter.Status != "" {
		status = sql.NullString{String: string(filter.Status), Valid: true}
	}
	if filter.Name != "" {
		name = sql.NullString{String: "%" + filter.Name + "%", Valid: true}
	}

	missions := []domain.Mission{}
	if err := r.db.SelectContext(ctx, &missions, query, status, name); err != nil {
		return nil, fmt.Errorf("select missions: %w", err)
	}
	return missions, nil
}

func (r *MissionRepository) GetOne(ctx context.Context, id domain.MissionID) (domain.Mission, error) {
	query := missionColumns + `
	WHERE m.id = $1 AND m.deleted_at IS NULL`

	var mission domain.Mission
	if err := r.db.GetContext(ctx, &mission, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Mission{}, domain.ErrNotFound
		}
		return domain.Mission{}, fmt.Errorf("select mission: %w", err)
	}
	return mission, nil
}

func (r *MissionRepository) GetCrew(ctx context.Context, id domain.MissionID) ([]domain.CrewMember, error) {
	const query = `
		SELECT b.display_name,
		       COALESCE(b.avatar_url, '') AS avatar_url,
		       COALESCE(s.success_count, 0) AS mission_success_count,
		       COALESCE(j.joined_count, 0) AS mission_joined_count
		FROM crew_memberships cm
		INNER JOIN brawlers b ON b.id = cm.brawler_id
		LEFT JOIN (
			SELECT cm2.brawler_id, COUNT(*) AS success_count
			FROM crew_memberships cm2
			INNER JOIN missions m2 ON m2.id = cm2.mission_id
			WHERE m2.status = 'success'
			GROUP BY cm2.brawler_id
		) s ON s.brawler_id = b.id
		LEFT JOIN (
			SELECT cm3.brawler_id, COUNT(*) AS joined_count
			FROM crew_memberships cm3
			GROUP BY cm3.brawler_id
		) j ON j.brawler_id = b.id
		WHERE cm.mission_id = $1`

	crew := []domain.CrewMember{}
	if err := r.db.SelectContext(ctx, &crew, query, id); err != nil {
		return nil, fmt.Errorf("select crew: %w", err)
	}
	return crew, nil
}

func (r *MissionRepository) MissionsOfChief(ctx context.Context, chiefID domain.BrawlerID) ([]domain.Mission, error) {
	query := missionColumns + `
	WHERE m.deleted_at IS NULL AND m.chief_id = $1
	ORDER BY m.created_at DESC`

	missions := []domain.Mission{}
	if err := r.db.SelectContext(ctx, &missions, query, chiefID); err != nil {
		return nil, fmt.Errorf("select chief missions: %w", err)
	}
	return missions, nil
}

func (r *MissionRepository) Add(ctx context.Context, add domain.AddMission) (domain.MissionID, error) {
	const query = `
		INSERT INTO missions (name, description, status, chief_id)
		VALUES ($1, $2, 'open', $3)
		RETURNING id`

	var id domain.MissionID
	if err := r.db.GetContext(ctx, &id, query, add.Name, add.Description, add.ChiefID); err != nil {
		return 0, fmt.Errorf("insert mission: %w", err)
	}
	return id, nil
}

// Edit updates only the provided fields; the WHERE clause enforces that
// the caller is the chief of a live mission.
func (r *MissionRepository) Edit(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID, edit domain.EditMission) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{id, chiefID}

	if edit.Name != nil {
		args = append(args, *edit.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if edit.Description != nil {
		args = append(args, *edit.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if edit.Status != nil {
		args = append(args, string(*edit.Status))
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE missions SET %s WHERE id = $1 AND chief_id = $2 AND deleted_at IS NULL`,
		strings.Join(sets, ", "),
	)
	return r.chiefGuardedExec(ctx, query, args...)
}

// Remove soft-deletes; rows stay behind for history queries.
func (r *MissionRepository) Remove(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID) error {
	const query = `
		UPDATE missions SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND chief_id = $2 AND deleted_at IS NULL`
	return r.chiefGuardedExec(ctx, query, id, chiefID)
}

func (r *MissionRepository) SetImageURL(ctx context.Context, id domain.MissionID, chiefID domain.BrawlerID, url string) error {
	const query = `
		UPDATE missions SET image_url = $3, updated_at = NOW()
		WHERE id = $1 AND chief_id = $2 AND deleted_at IS NULL`
	return r.chiefGuardedExec(ctx, query, id, chiefID, url)
}

// chiefGuardedExec distinguishes "mission gone" from "not your mission" so
// handlers can answer 404 vs 403.
func (r *MissionRepository) chiefGuardedExec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update mission: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	id := args[0]
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM missions WHERE id = $1 AND deleted_at IS NULL)`, id); err != nil {
		return fmt.Errorf("check mission: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrNotChief
}
