package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/quiniela26/prediction-system/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamCodeConflict = errors.New("team code conflict")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByCode(ctx context.Context, code string) (*models.Team, error)
	List(ctx context.Context, groupCode *string) ([]*models.Team, error)
	UpdateFlagKey(ctx context.Context, id int, flagKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, code, confederation, group_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.Name,
		team.Code,
		team.Confederation,
		team.GroupCode,
	).Scan(&team.ID, &team.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "teams_code_key" {
				return ErrTeamCodeConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, code, confederation, group_code, flag_key, created_at
		FROM teams
		WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	query := `
		SELECT id, name, code, confederation, group_code, flag_key, created_at
		FROM teams
		WHERE code = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, code))
}

func (r *postgresTeamRepository) List(ctx context.Context, groupCode *string) ([]*models.Team, error) {
	query := `
		SELECT id, name, code, confederation, group_code, flag_key, created_at
		FROM teams`
	args := []interface{}{}
	if groupCode != nil {
		query += ` WHERE group_code = $1`
		args = append(args, *groupCode)
	}
	query += ` ORDER BY group_code ASC NULLS LAST, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		team, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateFlagKey(ctx context.Context, id int, flagKey *string) error {
	query := `UPDATE teams SET flag_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, flagKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var team models.Team
	err := rowScanner.Scan(
		&team.ID,
		&team.Name,
		&team.Code,
		&team.Confederation,
		&team.GroupCode,
		&team.FlagKey,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}
