package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/quiniela26/prediction-system/models"
)

var (
	ErrGroupPredictionNotFound = errors.New("group prediction not found")
	ErrPredictionGroupInvalid  = errors.New("prediction references an unknown group or team")
)

type GroupPredictionRepository interface {
	// Upsert enforces one prediction per user per group.
	Upsert(ctx context.Context, prediction *models.GroupPrediction) error
	GetByID(ctx context.Context, id int) (*models.GroupPrediction, error)
	GetByUserAndGroup(ctx context.Context, userID int, groupCode string) (*models.GroupPrediction, error)
	ListByGroup(ctx context.Context, groupCode string) ([]*models.GroupPrediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.GroupPrediction, error)
	// UpdateScore overwrites the stored points; it never applies a delta.
	UpdateScore(ctx context.Context, exec SQLExecutor, id int, points int) error
	Delete(ctx context.Context, id, userID int) error
}

type postgresGroupPredictionRepository struct {
	db *sql.DB
}

func NewPostgresGroupPredictionRepository(db *sql.DB) GroupPredictionRepository {
	return &postgresGroupPredictionRepository{db: db}
}

func (r *postgresGroupPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGroupPredictionRepository) Upsert(ctx context.Context, prediction *models.GroupPrediction) error {
	query := `
		INSERT INTO group_predictions (user_id, group_code, first_team_id, second_team_id, third_team_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, group_code) DO UPDATE SET
			first_team_id = EXCLUDED.first_team_id,
			second_team_id = EXCLUDED.second_team_id,
			third_team_id = EXCLUDED.third_team_id,
			updated_at = NOW()
		RETURNING id, points_awarded, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.GroupCode,
		prediction.FirstTeamID,
		prediction.SecondTeamID,
		prediction.ThirdTeamID,
	).Scan(&prediction.ID, &prediction.PointsAwarded, &prediction.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPredictionGroupInvalid
		}
		return err
	}
	return nil
}

func (r *postgresGroupPredictionRepository) GetByID(ctx context.Context, id int) (*models.GroupPrediction, error) {
	query := selectGroupPrediction + ` WHERE id = $1`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresGroupPredictionRepository) GetByUserAndGroup(ctx context.Context, userID int, groupCode string) (*models.GroupPrediction, error) {
	query := selectGroupPrediction + ` WHERE user_id = $1 AND group_code = $2`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, userID, groupCode))
}

func (r *postgresGroupPredictionRepository) ListByGroup(ctx context.Context, groupCode string) ([]*models.GroupPrediction, error) {
	query := selectGroupPrediction + ` WHERE group_code = $1 ORDER BY id ASC`
	return r.listPredictions(ctx, query, groupCode)
}

func (r *postgresGroupPredictionRepository) ListByUser(ctx context.Context, userID int) ([]*models.GroupPrediction, error) {
	query := selectGroupPrediction + ` WHERE user_id = $1 ORDER BY group_code ASC`
	return r.listPredictions(ctx, query, userID)
}

func (r *postgresGroupPredictionRepository) UpdateScore(ctx context.Context, exec SQLExecutor, id int, points int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE group_predictions SET points_awarded = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, points, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupPredictionNotFound)
}

func (r *postgresGroupPredictionRepository) Delete(ctx context.Context, id, userID int) error {
	query := `DELETE FROM group_predictions WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupPredictionNotFound)
}

const selectGroupPrediction = `
	SELECT id, user_id, group_code, first_team_id, second_team_id, third_team_id, points_awarded, updated_at
	FROM group_predictions`

func (r *postgresGroupPredictionRepository) scanPrediction(rowScanner interface{ Scan(...interface{}) error }) (*models.GroupPrediction, error) {
	var p models.GroupPrediction
	err := rowScanner.Scan(
		&p.ID,
		&p.UserID,
		&p.GroupCode,
		&p.FirstTeamID,
		&p.SecondTeamID,
		&p.ThirdTeamID,
		&p.PointsAwarded,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupPredictionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresGroupPredictionRepository) listPredictions(ctx context.Context, query string, args ...interface{}) ([]*models.GroupPrediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]*models.GroupPrediction, 0)
	for rows.Next() {
		p, errScan := r.scanPrediction(rows)
		if errScan != nil {
			return nil, errScan
		}
		predictions = append(predictions, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return predictions, nil
}
