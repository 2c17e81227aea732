package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/quiniela26/prediction-system/models"
)

var (
	ErrTournamentPredictionNotFound = errors.New("tournament prediction not found")
	ErrPredictionAwardInvalid       = errors.New("prediction references an unknown team or player")
)

type TournamentPredictionRepository interface {
	// Upsert enforces at most one tournament prediction per user.
	Upsert(ctx context.Context, prediction *models.TournamentPrediction) error
	GetByID(ctx context.Context, id int) (*models.TournamentPrediction, error)
	GetByUser(ctx context.Context, userID int) (*models.TournamentPrediction, error)
	ListAll(ctx context.Context) ([]*models.TournamentPrediction, error)
	// UpdateScore overwrites the stored points; it never applies a delta.
	UpdateScore(ctx context.Context, exec SQLExecutor, id int, points int) error
	Delete(ctx context.Context, id, userID int) error
}

type postgresTournamentPredictionRepository struct {
	db *sql.DB
}

func NewPostgresTournamentPredictionRepository(db *sql.DB) TournamentPredictionRepository {
	return &postgresTournamentPredictionRepository{db: db}
}

func (r *postgresTournamentPredictionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentPredictionRepository) Upsert(ctx context.Context, prediction *models.TournamentPrediction) error {
	query := `
		INSERT INTO tournament_predictions (user_id, champion_team_id, runner_up_team_id, top_scorer_player_id,
		                                    best_player_player_id, best_goalkeeper_player_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			champion_team_id = EXCLUDED.champion_team_id,
			runner_up_team_id = EXCLUDED.runner_up_team_id,
			top_scorer_player_id = EXCLUDED.top_scorer_player_id,
			best_player_player_id = EXCLUDED.best_player_player_id,
			best_goalkeeper_player_id = EXCLUDED.best_goalkeeper_player_id,
			updated_at = NOW()
		RETURNING id, points_awarded, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		prediction.UserID,
		prediction.ChampionTeamID,
		prediction.RunnerUpTeamID,
		prediction.TopScorerPlayerID,
		prediction.BestPlayerPlayerID,
		prediction.BestGoalkeeperPlayerID,
	).Scan(&prediction.ID, &prediction.PointsAwarded, &prediction.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrPredictionAwardInvalid
		}
		return err
	}
	return nil
}

func (r *postgresTournamentPredictionRepository) GetByID(ctx context.Context, id int) (*models.TournamentPrediction, error) {
	query := selectTournamentPrediction + ` WHERE id = $1`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentPredictionRepository) GetByUser(ctx context.Context, userID int) (*models.TournamentPrediction, error) {
	query := selectTournamentPrediction + ` WHERE user_id = $1`
	return r.scanPrediction(r.db.QueryRowContext(ctx, query, userID))
}

func (r *postgresTournamentPredictionRepository) ListAll(ctx context.Context) ([]*models.TournamentPrediction, error) {
	query := selectTournamentPrediction + ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := make([]*models.TournamentPrediction, 0)
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

func (r *postgresTournamentPredictionRepository) UpdateScore(ctx context.Context, exec SQLExecutor, id int, points int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournament_predictions SET points_awarded = $1 WHERE id = $2`
	result, err := executor.ExecContext(ctx, query, points, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentPredictionNotFound)
}

func (r *postgresTournamentPredictionRepository) Delete(ctx context.Context, id, userID int) error {
	query := `DELETE FROM tournament_predictions WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentPredictionNotFound)
}

const selectTournamentPrediction = `
	SELECT id, user_id, champion_team_id, runner_up_team_id, top_scorer_player_id,
	       best_player_player_id, best_goalkeeper_player_id, points_awarded, updated_at
	FROM tournament_predictions`

func (r *postgresTournamentPredictionRepository) scanPrediction(rowScanner interface{ Scan(...interface{}) error }) (*models.TournamentPrediction, error) {
	var p models.TournamentPrediction
	err := rowScanner.Scan(
		&p.ID,
		&p.UserID,
		&p.ChampionTeamID,
		&p.RunnerUpTeamID,
		&p.TopScorerPlayerID,
		&p.BestPlayerPlayerID,
		&p.BestGoalkeeperPlayerID,
		&p.PointsAwarded,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentPredictionNotFound
		}
		return nil, err
	}
	return &p, nil
}
