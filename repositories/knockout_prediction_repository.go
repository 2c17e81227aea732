package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/quiniela26/prediction-system/models"
)

var ErrKnockoutPredictionNotFound = errors.New("knockout prediction not found")

type KnockoutPredictionRepository interface {
	// Upsert enforces one prediction per user per knockout match.
	Upsert(ctx context.Context, prediction *models.KnockoutPrediction) error
	GetByID(ctx context.Context, id int) (*models.KnockoutPrediction, error)
	GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.KnockoutPrediction, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.KnockoutPrediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.KnockoutPrediction, error)
	// UpdateScore overwrites the stored points and the nullable correctness
	// flag; it never applies a delta.
	UpdateScore(ctx context.Context, exec SQLExecutor, id int, points int, isCorrect *bool) error
	Delete(ctx context.Context, id, userID int) error
}

type postgresKnockoutPredictionRepository struct {
	db *sql.DB
}

func NewPostgresKnockoutPredictionRepository(db *sql.DB) KnockoutPredictionRepository {
	return &postgresKnockoutPredictionRepository{db: db}
}

func (r *postgresKnockoutPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresKnockoutPredictionRepository) Upsert(ctx context.Context, prediction *models.KnockoutPrediction) error {
	query := `
		INSERT INTO knockout_predictions (user_id, match_id, stage, predicted_winner_team_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, match_id) DO UPDATE SET
			stage = EXCLUDED.stage,
			predicted_winner_team_id = EXCLUDED.predicted_winner_team_id,
			updated_at = NOW()
		RETURNING id, points_awarded, is_correct, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.Stage,
		prediction.PredictedWinnerTeamID,
	).Scan(&prediction.ID, &prediction.PointsAwarded, &prediction.IsCorrect, &prediction.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPredictionMatchInvalid
		}
		return err
	}
	return nil
}

func (r *postgresKnockoutPredictionRepository) GetByID(ctx context.Context, id int) (*models.KnockoutPrediction, error) {
	query := selectKnockoutPrediction + ` WHERE id = $1`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresKnockoutPredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.KnockoutPrediction, error) {
	query := selectKnockoutPrediction + ` WHERE user_id = $1 AND match_id = $2`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, userID, matchID))
}

func (r *postgresKnockoutPredictionRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.KnockoutPrediction, error) {
	query := selectKnockoutPrediction + ` WHERE match_id = $1 ORDER BY id ASC`
	return r.listPredictions(ctx, query, matchID)
}

func (r *postgresKnockoutPredictionRepository) ListByUser(ctx context.Context, userID int) ([]*models.KnockoutPrediction, error) {
	query := selectKnockoutPrediction + ` WHERE user_id = $1 ORDER BY match_id ASC`
	return r.listPredictions(ctx, query, userID)
}

func (r *postgresKnockoutPredictionRepository) UpdateScore(ctx context.Context, exec SQLExecutor, id int, points int, isCorrect *bool) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE knockout_predictions SET
			points_awarded = $1,
			is_correct = $2
		WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, points, isCorrect, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrKnockoutPredictionNotFound)
}

func (r *postgresKnockoutPredictionRepository) Delete(ctx context.Context, id, userID int) error {
	query := `DELETE FROM knockout_predictions WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrKnockoutPredictionNotFound)
}

const selectKnockoutPrediction = `
	SELECT id, user_id, match_id, stage, predicted_winner_team_id, points_awarded, is_correct, updated_at
	FROM knockout_predictions`

func (r *postgresKnockoutPredictionRepository) scanPrediction(rowScanner interface{ Scan(...interface{}) error }) (*models.KnockoutPrediction, error) {
	var p models.KnockoutPrediction
	err := rowScanner.Scan(
		&p.ID,
		&p.UserID,
		&p.MatchID,
		&p.Stage,
		&p.PredictedWinnerTeamID,
		&p.PointsAwarded,
		&p.IsCorrect,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKnockoutPredictionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresKnockoutPredictionRepository) listPredictions(ctx context.Context, query string, args ...interface{}) ([]*models.KnockoutPrediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]*models.KnockoutPrediction, 0)
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
