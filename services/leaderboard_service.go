package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/quiniela26/prediction-system/models"
	"github.com/quiniela26/prediction-system/repositories"
	"github.com/quiniela26/prediction-system/scoring"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 100
)

type LeaderboardPage struct {
	Entries          []*models.LeaderboardEntry `json:"entries"`
	TotalRankedUsers int                        `json:"total_ranked_users"`
	Offset           int                        `json:"offset"`
	Limit            int                        `json:"limit"`
}

// LeaderboardService serves ranking pages and per-user standings. It is a
// pure reader: positions are derived from the stored aggregates at query
// time and never persisted.
type LeaderboardService interface {
	GetRankingPage(ctx context.Context, offset, limit int) (*LeaderboardPage, error)
	GetUserPosition(ctx context.Context, userID int) (*models.UserPosition, error)
	// RuleTable exposes the scoring rules so clients can render them without
	// hardcoding a copy.
	RuleTable() map[models.PredictionCategory]map[string]int
}

type leaderboardService struct {
	leaderboardRepo repositories.LeaderboardRepository
	userRepo        repositories.UserRepository
}

func NewLeaderboardService(leaderboardRepo repositories.LeaderboardRepository, userRepo repositories.UserRepository) LeaderboardService {
	return &leaderboardService{
		leaderboardRepo: leaderboardRepo,
		userRepo:        userRepo,
	}
}

func (s *leaderboardService) GetRankingPage(ctx context.Context, offset, limit int) (*LeaderboardPage, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := s.leaderboardRepo.ListRanked(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard page: %w", err)
	}
	total, err := s.leaderboardRepo.CountRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count ranked users: %w", err)
	}

	return &LeaderboardPage{
		Entries:          entries,
		TotalRankedUsers: total,
		Offset:           offset,
		Limit:            limit,
	}, nil
}

func (s *leaderboardService) GetUserPosition(ctx context.Context, userID int) (*models.UserPosition, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	total, err := s.leaderboardRepo.CountRanked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count ranked users: %w", err)
	}

	pos := &models.UserPosition{
		UserID:           userID,
		TotalRankedUsers: total,
	}
	// A user with no points has not entered the ranking yet; position 0 marks
	// them unranked rather than pinning them to the bottom.
	if user.TotalPoints <= 0 {
		return pos, nil
	}

	better, err := s.leaderboardRepo.CountStrictlyBetter(ctx, &models.UserAggregate{
		UserID:         user.ID,
		TotalPoints:    user.TotalPoints,
		CorrectMatches: user.CorrectMatches,
		CorrectScores:  user.CorrectScores,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rank user %d: %w", userID, err)
	}

	pos.Position = better + 1
	pos.Percentile = percentile(pos.Position, total)
	return pos, nil
}

func (s *leaderboardService) RuleTable() map[models.PredictionCategory]map[string]int {
	return scoring.RuleTable()
}

// percentile maps a rank to "better than N% of the field", clamped to [0, 100].
func percentile(position, total int) int {
	if total <= 0 || position <= 0 {
		return 0
	}
	p := int(math.Round((1 - float64(position)/float64(total)) * 100))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}
