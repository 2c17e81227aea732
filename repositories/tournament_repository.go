package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/quiniela26/prediction-system/models"
)

var ErrTournamentResultNotFound = errors.New("tournament result not found")

// TournamentResultRepository manages the single final-awards row.
type TournamentResultRepository interface {
	Upsert(ctx context.Context, result *models.TournamentResult) error
	Get(ctx context.Context) (*models.TournamentResult, error)
}

type postgresTournamentResultRepository struct {
	db *sql.DB
}

func NewPostgresTournamentResultRepository(db *sql.DB) TournamentResultRepository {
	return &postgresTournamentResultRepository{db: db}
}

func (r *postgresTournamentResultRepository) Upsert(ctx context.Context, result *models.TournamentResult) error {
	if result.FinalizedAt == nil {
		now := time.Now()
		result.FinalizedAt = &now
	}
	// The id = 1 guard keeps this a single-row table.
	query := `
		INSERT INTO tournament_result (id, champion_team_id, runner_up_team_id, top_scorer_player_id,
		                               best_player_player_id, best_goalkeeper_player_id, finalized, finalized_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			champion_team_id = EXCLUDED.champion_team_id,
			runner_up_team_id = EXCLUDED.runner_up_team_id,
			top_scorer_player_id = EXCLUDED.top_scorer_player_id,
			best_player_player_id = EXCLUDED.best_player_player_id,
			best_goalkeeper_player_id = EXCLUDED.best_goalkeeper_player_id,
			finalized = EXCLUDED.finalized,
			finalized_at = EXCLUDED.finalized_at`

	_, err := r.db.ExecContext(ctx, query,
		result.ChampionTeamID,
		result.RunnerUpTeamID,
		result.TopScorerPlayerID,
		result.BestPlayerPlayerID,
		result.BestGoalkeeperPlayerID,
		result.Finalized,
		result.FinalizedAt,
	)
	return err
}

func (r *postgresTournamentResultRepository) Get(ctx context.Context) (*models.TournamentResult, error) {
	query := `
		SELECT champion_team_id, runner_up_team_id, top_scorer_player_id,
		       best_player_player_id, best_goalkeeper_player_id, finalized, finalized_at
		FROM tournament_result
		WHERE id = 1`

	var result models.TournamentResult
	err := r.db.QueryRowContext(ctx, query).Scan(
		&result.ChampionTeamID,
		&result.RunnerUpTeamID,
		&result.TopScorerPlayerID,
		&result.BestPlayerPlayerID,
		&result.BestGoalkeeperPlayerID,
		&result.Finalized,
		&result.FinalizedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentResultNotFound
		}
		return nil, err
	}
	return &result, nil
}
