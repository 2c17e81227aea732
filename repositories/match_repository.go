package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/quiniela26/prediction-system/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, groupCode *string, stage *models.KnockoutStage, status *models.MatchStatus) ([]*models.Match, error)
	// UpdateResult records the final scoreline and the terminal status in one
	// write.
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, homeGoals, awayGoals int, status models.MatchStatus) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (group_code, stage, home_team_id, away_team_id, status, kickoff_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		match.GroupCode,
		match.Stage,
		match.HomeTeamID,
		match.AwayTeamID,
		match.Status,
		match.KickoffAt,
	).Scan(&match.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if strings.HasPrefix(pqErr.Constraint, "matches_home_team") ||
				strings.HasPrefix(pqErr.Constraint, "matches_away_team") {
				return ErrMatchTeamInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, group_code, stage, home_team_id, away_team_id, home_goals, away_goals, status, kickoff_at
		FROM matches
		WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context, groupCode *string, stage *models.KnockoutStage, status *models.MatchStatus) ([]*models.Match, error) {
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT id, group_code, stage, home_team_id, away_team_id, home_goals, away_goals, status, kickoff_at
		FROM matches`)

	conditions := []string{}
	args := []interface{}{}
	addCondition := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, strings.Replace(cond, "?", placeholder(len(args)), 1))
	}
	if groupCode != nil {
		addCondition("group_code = ?", *groupCode)
	}
	if stage != nil {
		addCondition("stage = ?", *stage)
	}
	if status != nil {
		addCondition("status = ?", *status)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY kickoff_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, homeGoals, awayGoals int, status models.MatchStatus) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches SET
			home_goals = $1,
			away_goals = $2,
			status = $3
		WHERE id = $4`

	result, err := executor.ExecContext(ctx, query, homeGoals, awayGoals, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var match models.Match
	err := rowScanner.Scan(
		&match.ID,
		&match.GroupCode,
		&match.Stage,
		&match.HomeTeamID,
		&match.AwayTeamID,
		&match.HomeGoals,
		&match.AwayGoals,
		&match.Status,
		&match.KickoffAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}
