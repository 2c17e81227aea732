package repositories

import (
	"context"
	"database/sql"

	"github.com/quiniela26/prediction-system/models"
)

// LeaderboardRepository answers ranking queries over the users table. Only
// users with total_points > 0 are ranked.
type LeaderboardRepository interface {
	// ListRanked returns one leaderboard page in display order. Position is
	// computed with RANK() over the tie-break tuple, so users tied on all
	// three fields share a position while display order stays stable
	// (user id ascending).
	ListRanked(ctx context.Context, offset, limit int) ([]*models.LeaderboardEntry, error)
	CountRanked(ctx context.Context) (int, error)
	// CountStrictlyBetter returns how many ranked users precede the given
	// aggregate tuple under the descending lexicographic ordering
	// (total_points, correct_scores, correct_matches).
	CountStrictlyBetter(ctx context.Context, agg *models.UserAggregate) (int, error)
}

type postgresLeaderboardRepository struct {
	db *sql.DB
}

func NewPostgresLeaderboardRepository(db *sql.DB) LeaderboardRepository {
	return &postgresLeaderboardRepository{db: db}
}

func (r *postgresLeaderboardRepository) ListRanked(ctx context.Context, offset, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT id, nickname, total_points, correct_matches, correct_scores,
		       RANK() OVER (ORDER BY total_points DESC, correct_scores DESC, correct_matches DESC) AS position
		FROM users
		WHERE total_points > 0
		ORDER BY total_points DESC, correct_scores DESC, correct_matches DESC, id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.LeaderboardEntry, 0)
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.Nickname,
			&entry.TotalPoints,
			&entry.CorrectMatches,
			&entry.CorrectScores,
			&entry.Position,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postgresLeaderboardRepository) CountRanked(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE total_points > 0`).Scan(&count)
	return count, err
}

func (r *postgresLeaderboardRepository) CountStrictlyBetter(ctx context.Context, agg *models.UserAggregate) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM users
		WHERE total_points > 0
		  AND (total_points, correct_scores, correct_matches) > ($1, $2, $3)`

	var count int
	err := r.db.QueryRowContext(ctx, query, agg.TotalPoints, agg.CorrectScores, agg.CorrectMatches).Scan(&count)
	return count, err
}
