package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/quiniela26/prediction-system/models"
)

var ErrGroupStandingNotFound = errors.New("group standing not found")

type GroupStandingRepository interface {
	// Upsert stores the finalized top three for a group. Re-finalizing the
	// same group overwrites the previous standings.
	Upsert(ctx context.Context, standing *models.GroupStanding) error
	GetByCode(ctx context.Context, groupCode string) (*models.GroupStanding, error)
	List(ctx context.Context) ([]*models.GroupStanding, error)
}

type postgresGroupStandingRepository struct {
	db *sql.DB
}

func NewPostgresGroupStandingRepository(db *sql.DB) GroupStandingRepository {
	return &postgresGroupStandingRepository{db: db}
}

func (r *postgresGroupStandingRepository) Upsert(ctx context.Context, standing *models.GroupStanding) error {
	if standing.FinalizedAt == nil {
		now := time.Now()
		standing.FinalizedAt = &now
	}
	query := `
		INSERT INTO group_standings (group_code, first_team_id, second_team_id, third_team_id, finalized, finalized_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (group_code) DO UPDATE SET
			first_team_id = EXCLUDED.first_team_id,
			second_team_id = EXCLUDED.second_team_id,
			third_team_id = EXCLUDED.third_team_id,
			finalized = EXCLUDED.finalized,
			finalized_at = EXCLUDED.finalized_at`

	_, err := r.db.ExecContext(ctx, query,
		standing.GroupCode,
		standing.FirstTeamID,
		standing.SecondTeamID,
		standing.ThirdTeamID,
		standing.Finalized,
		standing.FinalizedAt,
	)
	return err
}

func (r *postgresGroupStandingRepository) GetByCode(ctx context.Context, groupCode string) (*models.GroupStanding, error) {
	query := `
		SELECT group_code, first_team_id, second_team_id, third_team_id, finalized, finalized_at
		FROM group_standings
		WHERE group_code = $1`

	var standing models.GroupStanding
	err := r.db.QueryRowContext(ctx, query, groupCode).Scan(
		&standing.GroupCode,
		&standing.FirstTeamID,
		&standing.SecondTeamID,
		&standing.ThirdTeamID,
		&standing.Finalized,
		&standing.FinalizedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupStandingNotFound
		}
		return nil, err
	}
	return &standing, nil
}

func (r *postgresGroupStandingRepository) List(ctx context.Context) ([]*models.GroupStanding, error) {
	query := `
		SELECT group_code, first_team_id, second_team_id, third_team_id, finalized, finalized_at
		FROM group_standings
		ORDER BY group_code ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.GroupStanding, 0)
	for rows.Next() {
		var standing models.GroupStanding
		if err := rows.Scan(
			&standing.GroupCode,
			&standing.FirstTeamID,
			&standing.SecondTeamID,
			&standing.ThirdTeamID,
			&standing.Finalized,
			&standing.FinalizedAt,
		); err != nil {
			return nil, err
		}
		standings = append(standings, &standing)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}
