package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/quiniela26/prediction-system/models"
	"github.com/quiniela26/prediction-system/repositories"
	"github.com/quiniela26/prediction-system/scoring"
)

// ScoringService is the result finalization trigger. Each Finalize* call
// refuses non-terminal results, rescores every prediction referencing the
// result by overwriting the stored points (never adding a delta, so repeated
// finalization converges instead of compounding), collects per-prediction
// failures without aborting the batch, and finally recomputes the aggregate
// of every affected user.
type ScoringService interface {
	FinalizeMatch(ctx context.Context, matchID int) (*models.FinalizationSummary, error)
	FinalizeGroup(ctx context.Context, groupCode string) (*models.FinalizationSummary, error)
	FinalizeTournament(ctx context.Context) (*models.FinalizationSummary, error)
}

type scoringService struct {
	matchRepo            repositories.MatchRepository
	groupStandingRepo    repositories.GroupStandingRepository
	tournamentResultRepo repositories.TournamentResultRepository
	groupPredRepo        repositories.GroupPredictionRepository
	matchPredRepo        repositories.MatchPredictionRepository
	knockoutPredRepo     repositories.KnockoutPredictionRepository
	tournamentPredRepo   repositories.TournamentPredictionRepository
	aggregates           AggregateService
	logger               *slog.Logger
}

func NewScoringService(
	matchRepo repositories.MatchRepository,
	groupStandingRepo repositories.GroupStandingRepository,
	tournamentResultRepo repositories.TournamentResultRepository,
	groupPredRepo repositories.GroupPredictionRepository,
	matchPredRepo repositories.MatchPredictionRepository,
	knockoutPredRepo repositories.KnockoutPredictionRepository,
	tournamentPredRepo repositories.TournamentPredictionRepository,
	aggregates AggregateService,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		matchRepo:            matchRepo,
		groupStandingRepo:    groupStandingRepo,
		tournamentResultRepo: tournamentResultRepo,
		groupPredRepo:        groupPredRepo,
		matchPredRepo:        matchPredRepo,
		knockoutPredRepo:     knockoutPredRepo,
		tournamentPredRepo:   tournamentPredRepo,
		aggregates:           aggregates,
		logger:               logger,
	}
}

func (s *scoringService) FinalizeMatch(ctx context.Context, matchID int) (*models.FinalizationSummary, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	if !match.HasFinalScore() {
		return nil, fmt.Errorf("%w: match %d", ErrResultNotFinal, matchID)
	}

	summary := &models.FinalizationSummary{}
	owners := map[int]struct{}{}

	predictions, err := s.matchPredRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for match %d: %w", matchID, err)
	}
	for _, p := range predictions {
		score := scoring.ScoreMatch(p, *match.HomeGoals, *match.AwayGoals)
		recalculated := p.PointsAwarded != score.Points ||
			p.IsCorrectWinner != score.CorrectWinner ||
			p.IsCorrectScore != score.CorrectScore

		if err := s.matchPredRepo.UpdateScore(ctx, nil, p.ID, score.Points, score.CorrectWinner, score.CorrectScore); err != nil {
			s.recordError(summary, p.ID, models.CategoryMatch, err)
			continue
		}
		summary.Scored = append(summary.Scored, models.PredictionScore{
			PredictionID: p.ID,
			Category:     models.CategoryMatch,
			UserID:       p.UserID,
			PointsEarned: score.Points,
			Recalculated: recalculated,
		})
		owners[p.UserID] = struct{}{}
	}

	// Knockout predictions reference the same fixture once it belongs to the
	// bracket.
	if match.Stage != nil {
		knockoutPreds, err := s.knockoutPredRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return nil, fmt.Errorf("failed to list knockout predictions for match %d: %w", matchID, err)
		}
		for _, p := range knockoutPreds {
			score := scoring.ScoreKnockout(p, match.HomeTeamID, match.AwayTeamID, *match.HomeGoals, *match.AwayGoals)
			recalculated := p.PointsAwarded != score.Points || !equalBoolPtr(p.IsCorrect, score.Correct)

			if err := s.knockoutPredRepo.UpdateScore(ctx, nil, p.ID, score.Points, score.Correct); err != nil {
				s.recordError(summary, p.ID, models.CategoryKnockout, err)
				continue
			}
			summary.Scored = append(summary.Scored, models.PredictionScore{
				PredictionID: p.ID,
				Category:     models.CategoryKnockout,
				UserID:       p.UserID,
				PointsEarned: score.Points,
				Recalculated: recalculated,
			})
			owners[p.UserID] = struct{}{}
		}
	}

	s.recomputeOwners(ctx, summary, owners)
	return summary, nil
}

func (s *scoringService) FinalizeGroup(ctx context.Context, groupCode string) (*models.FinalizationSummary, error) {
	standing, err := s.groupStandingRepo.GetByCode(ctx, groupCode)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupStandingNotFound) {
			return nil, fmt.Errorf("%w: group %s has no standings", ErrResultNotFinal, groupCode)
		}
		return nil, fmt.Errorf("failed to load standings for group %s: %w", groupCode, err)
	}
	if !standing.Finalized {
		return nil, fmt.Errorf("%w: group %s", ErrResultNotFinal, groupCode)
	}

	summary := &models.FinalizationSummary{}
	owners := map[int]struct{}{}

	predictions, err := s.groupPredRepo.ListByGroup(ctx, groupCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions for group %s: %w", groupCode, err)
	}
	for _, p := range predictions {
		points := scoring.ScoreGroup(p, standing)
		recalculated := p.PointsAwarded != points

		if err := s.groupPredRepo.UpdateScore(ctx, nil, p.ID, points); err != nil {
			s.recordError(summary, p.ID, models.CategoryGroup, err)
			continue
		}
		summary.Scored = append(summary.Scored, models.PredictionScore{
			PredictionID: p.ID,
			Category:     models.CategoryGroup,
			UserID:       p.UserID,
			PointsEarned: points,
			Recalculated: recalculated,
		})
		owners[p.UserID] = struct{}{}
	}

	s.recomputeOwners(ctx, summary, owners)
	return summary, nil
}

func (s *scoringService) FinalizeTournament(ctx context.Context) (*models.FinalizationSummary, error) {
	result, err := s.tournamentResultRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentResultNotFound) {
			return nil, fmt.Errorf("%w: no tournament result recorded", ErrResultNotFinal)
		}
		return nil, fmt.Errorf("failed to load tournament result: %w", err)
	}
	if !result.Finalized {
		return nil, fmt.Errorf("%w: tournament result", ErrResultNotFinal)
	}

	summary := &models.FinalizationSummary{}
	owners := map[int]struct{}{}

	predictions, err := s.tournamentPredRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament predictions: %w", err)
	}
	for _, p := range predictions {
		points := scoring.ScoreTournament(p, result)
		recalculated := p.PointsAwarded != points

		if err := s.tournamentPredRepo.UpdateScore(ctx, nil, p.ID, points); err != nil {
			s.recordError(summary, p.ID, models.CategoryTournament, err)
			continue
		}
		summary.Scored = append(summary.Scored, models.PredictionScore{
			PredictionID: p.ID,
			Category:     models.CategoryTournament,
			UserID:       p.UserID,
			PointsEarned: points,
			Recalculated: recalculated,
		})
		owners[p.UserID] = struct{}{}
	}

	s.recomputeOwners(ctx, summary, owners)
	return summary, nil
}

func (s *scoringService) recordError(summary *models.FinalizationSummary, predictionID int, category models.PredictionCategory, err error) {
	s.logger.Error("failed to score prediction",
		slog.Int("prediction_id", predictionID),
		slog.String("category", string(category)),
		slog.Any("error", err))
	summary.Errors = append(summary.Errors, models.PredictionError{
		PredictionID: predictionID,
		Category:     category,
		Error:        err.Error(),
	})
}

// recomputeOwners recomputes the aggregate of every distinct affected user in
// a stable order; per-user failures are collected and never abort the rest.
func (s *scoringService) recomputeOwners(ctx context.Context, summary *models.FinalizationSummary, owners map[int]struct{}) {
	userIDs := make([]int, 0, len(owners))
	for userID := range owners {
		userIDs = append(userIDs, userID)
	}
	sort.Ints(userIDs)

	for _, userID := range userIDs {
		if _, err := s.aggregates.RecomputeUser(ctx, userID); err != nil {
			s.logger.Error("failed to recompute aggregate after finalization",
				slog.Int("user_id", userID), slog.Any("error", err))
			summary.RecomputeErrors = append(summary.RecomputeErrors, models.RecomputeError{
				UserID: userID,
				Error:  err.Error(),
			})
			continue
		}
		summary.RecomputedUsers = append(summary.RecomputedUsers, userID)
	}
}

func equalBoolPtr(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
