package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quiniela26/prediction-system/models"
	"github.com/quiniela26/prediction-system/repositories"
)

// recomputeParallelism bounds the number of users recomputed at once during
// a bulk run.
const recomputeParallelism = 8

// AggregateService is the single sanctioned writer of the per-user aggregate
// fields. RecomputeUser is a total, idempotent read-then-overwrite: it reads
// every prediction record the user owns, derives the aggregate from scratch
// and writes it in one update. Nothing anywhere else may increment or
// decrement the aggregate, which is what makes repeated finalization and
// rescoring safe.
type AggregateService interface {
	RecomputeUser(ctx context.Context, userID int) (*models.UserAggregate, error)
	// RecomputeAllUsers treats each user as an independent unit of work: a
	// failure for one user is reported and does not abort the rest.
	RecomputeAllUsers(ctx context.Context) (*models.RecomputeSummary, error)
}

type aggregateService struct {
	userRepo           repositories.UserRepository
	groupPredRepo      repositories.GroupPredictionRepository
	matchPredRepo      repositories.MatchPredictionRepository
	knockoutPredRepo   repositories.KnockoutPredictionRepository
	tournamentPredRepo repositories.TournamentPredictionRepository
	logger             *slog.Logger
}

func NewAggregateService(
	userRepo repositories.UserRepository,
	groupPredRepo repositories.GroupPredictionRepository,
	matchPredRepo repositories.MatchPredictionRepository,
	knockoutPredRepo repositories.KnockoutPredictionRepository,
	tournamentPredRepo repositories.TournamentPredictionRepository,
	logger *slog.Logger,
) AggregateService {
	return &aggregateService{
		userRepo:           userRepo,
		groupPredRepo:      groupPredRepo,
		matchPredRepo:      matchPredRepo,
		knockoutPredRepo:   knockoutPredRepo,
		tournamentPredRepo: tournamentPredRepo,
		logger:             logger,
	}
}

func (s *aggregateService) RecomputeUser(ctx context.Context, userID int) (*models.UserAggregate, error) {
	agg := &models.UserAggregate{UserID: userID}

	groupPreds, err := s.groupPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group predictions for user %d: %w", userID, err)
	}
	for _, p := range groupPreds {
		agg.TotalPoints += p.PointsAwarded
	}

	matchPreds, err := s.matchPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match predictions for user %d: %w", userID, err)
	}
	for _, p := range matchPreds {
		agg.TotalPoints += p.PointsAwarded
		if p.IsCorrectWinner {
			agg.CorrectMatches++
		}
		if p.IsCorrectScore {
			agg.CorrectScores++
		}
	}

	knockoutPreds, err := s.knockoutPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list knockout predictions for user %d: %w", userID, err)
	}
	for _, p := range knockoutPreds {
		agg.TotalPoints += p.PointsAwarded
	}

	tournamentPred, err := s.tournamentPredRepo.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrTournamentPredictionNotFound) {
		return nil, fmt.Errorf("failed to get tournament prediction for user %d: %w", userID, err)
	}
	if tournamentPred != nil {
		agg.TotalPoints += tournamentPred.PointsAwarded
	}

	if err := s.userRepo.UpdateAggregate(ctx, agg); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return agg, nil
}

func (s *aggregateService) RecomputeAllUsers(ctx context.Context) (*models.RecomputeSummary, error) {
	userIDs, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for bulk recompute: %w", err)
	}

	summary := &models.RecomputeSummary{}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(recomputeParallelism)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			_, recomputeErr := s.RecomputeUser(ctx, userID)

			mu.Lock()
			defer mu.Unlock()
			summary.UsersProcessed++
			if recomputeErr != nil {
				s.logger.Error("bulk recompute: user failed",
					slog.Int("user_id", userID), slog.Any("error", recomputeErr))
				summary.Errors = append(summary.Errors, models.RecomputeError{
					UserID: userID,
					Error:  recomputeErr.Error(),
				})
			}
			// Per-user failures are collected, never propagated: one bad
			// user must not abort the batch.
			return nil
		})
	}
	_ = g.Wait()

	return summary, nil
}
