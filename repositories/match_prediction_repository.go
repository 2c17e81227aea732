package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/quiniela26/prediction-system/models"
)

var (
	ErrMatchPredictionNotFound = errors.New("match prediction not found")
	ErrPredictionMatchInvalid  = errors.New("prediction references an unknown match")
)

type MatchPredictionRepository interface {
	// Upsert enforces one prediction per user per match.
	Upsert(ctx context.Context, prediction *models.MatchPrediction) error
	GetByID(ctx context.Context, id int) (*models.MatchPrediction, error)
	GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.MatchPrediction, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.MatchPrediction, error)
	ListByUser(ctx context.Context, userID int) ([]*models.MatchPrediction, error)
	// UpdateScore overwrites the stored points and correctness flags; it
	// never applies a delta.
	UpdateScore(ctx context.Context, exec SQLExecutor, id int, points int, correctWinner, correctScore bool) error
	Delete(ctx context.Context, id, userID int) error
}

type postgresMatchPredictionRepository struct {
	db *sql.DB
}

func NewPostgresMatchPredictionRepository(db *sql.DB) MatchPredictionRepository {
	return &postgresMatchPredictionRepository{db: db}
}

func (r *postgresMatchPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchPredictionRepository) Upsert(ctx context.Context, prediction *models.MatchPrediction) error {
	query := `
		INSERT INTO match_predictions (user_id, match_id, predicted_winner, predicted_home_goals, predicted_away_goals, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, match_id) DO UPDATE SET
			predicted_winner = EXCLUDED.predicted_winner,
			predicted_home_goals = EXCLUDED.predicted_home_goals,
			predicted_away_goals = EXCLUDED.predicted_away_goals,
			updated_at = NOW()
		RETURNING id, points_awarded, is_correct_winner, is_correct_score, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.MatchID,
		prediction.PredictedWinner,
		prediction.PredictedHomeGoals,
		prediction.PredictedAwayGoals,
	).Scan(&prediction.ID, &prediction.PointsAwarded, &prediction.IsCorrectWinner, &prediction.IsCorrectScore, &prediction.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPredictionMatchInvalid
		}
		return err
	}
	return nil
}

func (r *postgresMatchPredictionRepository) GetByID(ctx context.Context, id int) (*models.MatchPrediction, error) {
	query := selectMatchPrediction + ` WHERE id = $1`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchPredictionRepository) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.MatchPrediction, error) {
	query := selectMatchPrediction + ` WHERE user_id = $1 AND match_id = $2`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, userID, matchID))
}

func (r *postgresMatchPredictionRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchPrediction, error) {
	query := selectMatchPrediction + ` WHERE match_id = $1 ORDER BY id ASC`
	return r.listPredictions(ctx, query, matchID)
}

func (r *postgresMatchPredictionRepository) ListByUser(ctx context.Context, userID int) ([]*models.MatchPrediction, error) {
	query := selectMatchPrediction + ` WHERE user_id = $1 ORDER BY match_id ASC`
	return r.listPredictions(ctx, query, userID)
}

func (r *postgresMatchPredictionRepository) UpdateScore(ctx context.Context, exec SQLExecutor, id int, points int, correctWinner, correctScore bool) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE match_predictions SET
			points_awarded = $1,
			is_correct_winner = $2,
			is_correct_score = $3
		WHERE id = $4`
	result, err := executor.ExecContext(ctx, query, points, correctWinner, correctScore, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchPredictionNotFound)
}

func (r *postgresMatchPredictionRepository) Delete(ctx context.Context, id, userID int) error {
	query := `DELETE FROM match_predictions WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchPredictionNotFound)
}

const selectMatchPrediction = `
	SELECT id, user_id, match_id, predicted_winner, predicted_home_goals, predicted_away_goals,
	       points_awarded, is_correct_winner, is_correct_score, updated_at
	FROM match_predictions`

func (r *postgresMatchPredictionRepository) scanPrediction(rowScanner interface{ Scan(...interface{}) error }) (*models.MatchPrediction, error) {
	var p models.MatchPrediction
	err := rowScanner.Scan(
		&p.ID,
		&p.UserID,
		&p.MatchID,
		&p.PredictedWinner,
		&p.PredictedHomeGoals,
		&p.PredictedAwayGoals,
		&p.PointsAwarded,
		&p.IsCorrectWinner,
		&p.IsCorrectScore,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchPredictionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresMatchPredictionRepository) listPredictions(ctx context.Context, query string, args ...interface{}) ([]*models.MatchPrediction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]*models.MatchPrediction, 0)
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
