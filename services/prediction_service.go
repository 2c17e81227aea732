package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/quiniela26/prediction-system/models"
	"github.com/quiniela26/prediction-system/repositories"
	"github.com/quiniela26/prediction-system/scoring"
)

type GroupPredictionInput struct {
	GroupCode    string `json:"group_code"`
	FirstTeamID  int    `json:"first_team_id"`
	SecondTeamID int    `json:"second_team_id"`
	ThirdTeamID  *int   `json:"third_team_id,omitempty"`
}

type MatchPredictionInput struct {
	MatchID            int                `json:"match_id"`
	PredictedWinner    models.MatchWinner `json:"predicted_winner"`
	PredictedHomeGoals int                `json:"predicted_home_goals"`
	PredictedAwayGoals int                `json:"predicted_away_goals"`
}

type KnockoutPredictionInput struct {
	MatchID               int `json:"match_id"`
	PredictedWinnerTeamID int `json:"predicted_winner_team_id"`
}

type TournamentPredictionInput struct {
	ChampionTeamID         int `json:"champion_team_id"`
	RunnerUpTeamID         int `json:"runner_up_team_id"`
	TopScorerPlayerID      int `json:"top_scorer_player_id"`
	BestPlayerPlayerID     int `json:"best_player_player_id"`
	BestGoalkeeperPlayerID int `json:"best_goalkeeper_player_id"`
}

// UserPredictions bundles everything a user has predicted, for the profile
// and review screens.
type UserPredictions struct {
	Groups     []*models.GroupPrediction   `json:"groups"`
	Matches    []*models.MatchPrediction   `json:"matches"`
	Knockouts  []*models.KnockoutPrediction `json:"knockouts"`
	Tournament *models.TournamentPrediction `json:"tournament,omitempty"`
}

// PredictionService manages user predictions. Saves are upserts keyed on the
// predicted subject, so resubmitting replaces the previous guess. Every save
// is refused once the referenced result is locked: a match that has kicked
// off, a finalized group, or a finalized tournament result.
type PredictionService interface {
	SaveGroupPrediction(ctx context.Context, userID int, input GroupPredictionInput) (*models.GroupPrediction, error)
	SaveMatchPrediction(ctx context.Context, userID int, input MatchPredictionInput) (*models.MatchPrediction, error)
	SaveKnockoutPrediction(ctx context.Context, userID int, input KnockoutPredictionInput) (*models.KnockoutPrediction, error)
	SaveTournamentPrediction(ctx context.Context, userID int, input TournamentPredictionInput) (*models.TournamentPrediction, error)
	ListUserPredictions(ctx context.Context, userID int) (*UserPredictions, error)
	// DeletePrediction removes one prediction owned by the user and
	// recomputes their aggregate so stale points never linger.
	DeletePrediction(ctx context.Context, userID int, category models.PredictionCategory, predictionID int) error
}

type predictionService struct {
	matchRepo            repositories.MatchRepository
	teamRepo             repositories.TeamRepository
	groupStandingRepo    repositories.GroupStandingRepository
	tournamentResultRepo repositories.TournamentResultRepository
	groupPredRepo        repositories.GroupPredictionRepository
	matchPredRepo        repositories.MatchPredictionRepository
	knockoutPredRepo     repositories.KnockoutPredictionRepository
	tournamentPredRepo   repositories.TournamentPredictionRepository
	aggregates           AggregateService
}

func NewPredictionService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	groupStandingRepo repositories.GroupStandingRepository,
	tournamentResultRepo repositories.TournamentResultRepository,
	groupPredRepo repositories.GroupPredictionRepository,
	matchPredRepo repositories.MatchPredictionRepository,
	knockoutPredRepo repositories.KnockoutPredictionRepository,
	tournamentPredRepo repositories.TournamentPredictionRepository,
	aggregates AggregateService,
) PredictionService {
	return &predictionService{
		matchRepo:            matchRepo,
		teamRepo:             teamRepo,
		groupStandingRepo:    groupStandingRepo,
		tournamentResultRepo: tournamentResultRepo,
		groupPredRepo:        groupPredRepo,
		matchPredRepo:        matchPredRepo,
		knockoutPredRepo:     knockoutPredRepo,
		tournamentPredRepo:   tournamentPredRepo,
		aggregates:           aggregates,
	}
}

func (s *predictionService) SaveGroupPrediction(ctx context.Context, userID int, input GroupPredictionInput) (*models.GroupPrediction, error) {
	standing, err := s.groupStandingRepo.GetByCode(ctx, input.GroupCode)
	if err != nil && !errors.Is(err, repositories.ErrGroupStandingNotFound) {
		return nil, fmt.Errorf("failed to load standings for group %s: %w", input.GroupCode, err)
	}
	if standing != nil && standing.Finalized {
		return nil, fmt.Errorf("%w: group %s is finalized", ErrPredictionLocked, input.GroupCode)
	}

	if input.FirstTeamID == input.SecondTeamID ||
		(input.ThirdTeamID != nil && (*input.ThirdTeamID == input.FirstTeamID || *input.ThirdTeamID == input.SecondTeamID)) {
		return nil, fmt.Errorf("%w: group prediction must name distinct teams", ErrValidationFailed)
	}

	teamIDs := []int{input.FirstTeamID, input.SecondTeamID}
	if input.ThirdTeamID != nil {
		teamIDs = append(teamIDs, *input.ThirdTeamID)
	}
	for _, teamID := range teamIDs {
		if err := s.verifyTeamInGroup(ctx, teamID, input.GroupCode); err != nil {
			return nil, err
		}
	}

	prediction := &models.GroupPrediction{
		UserID:       userID,
		GroupCode:    input.GroupCode,
		FirstTeamID:  input.FirstTeamID,
		SecondTeamID: input.SecondTeamID,
		ThirdTeamID:  input.ThirdTeamID,
	}
	if err := s.groupPredRepo.Upsert(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to save group prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) SaveMatchPrediction(ctx context.Context, userID int, input MatchPredictionInput) (*models.MatchPrediction, error) {
	match, err := s.loadMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusScheduled {
		return nil, fmt.Errorf("%w: match %d has started", ErrPredictionLocked, input.MatchID)
	}

	if input.PredictedHomeGoals < 0 || input.PredictedAwayGoals < 0 {
		return nil, fmt.Errorf("%w: predicted goals must not be negative", ErrValidationFailed)
	}
	switch input.PredictedWinner {
	case models.WinnerHome, models.WinnerAway, models.WinnerDraw:
	default:
		return nil, fmt.Errorf("%w: unknown predicted winner %q", ErrValidationFailed, input.PredictedWinner)
	}
	// A prediction like HOME with a 1-2 scoreline contradicts itself.
	if scoring.WinnerFromScore(input.PredictedHomeGoals, input.PredictedAwayGoals) != input.PredictedWinner {
		return nil, ErrScorelineMismatch
	}

	prediction := &models.MatchPrediction{
		UserID:             userID,
		MatchID:            input.MatchID,
		PredictedWinner:    input.PredictedWinner,
		PredictedHomeGoals: input.PredictedHomeGoals,
		PredictedAwayGoals: input.PredictedAwayGoals,
	}
	if err := s.matchPredRepo.Upsert(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to save match prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) SaveKnockoutPrediction(ctx context.Context, userID int, input KnockoutPredictionInput) (*models.KnockoutPrediction, error) {
	match, err := s.loadMatch(ctx, input.MatchID)
	if err != nil {
		return nil, err
	}
	if match.Stage == nil {
		return nil, fmt.Errorf("%w: match %d", ErrNotKnockoutMatch, input.MatchID)
	}
	if match.Status != models.MatchStatusScheduled {
		return nil, fmt.Errorf("%w: match %d has started", ErrPredictionLocked, input.MatchID)
	}
	if input.PredictedWinnerTeamID != match.HomeTeamID && input.PredictedWinnerTeamID != match.AwayTeamID {
		return nil, fmt.Errorf("%w: team %d", ErrTeamNotInMatch, input.PredictedWinnerTeamID)
	}

	prediction := &models.KnockoutPrediction{
		UserID:                userID,
		MatchID:               input.MatchID,
		Stage:                 *match.Stage,
		PredictedWinnerTeamID: input.PredictedWinnerTeamID,
	}
	if err := s.knockoutPredRepo.Upsert(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to save knockout prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) SaveTournamentPrediction(ctx context.Context, userID int, input TournamentPredictionInput) (*models.TournamentPrediction, error) {
	result, err := s.tournamentResultRepo.Get(ctx)
	if err != nil && !errors.Is(err, repositories.ErrTournamentResultNotFound) {
		return nil, fmt.Errorf("failed to load tournament result: %w", err)
	}
	if result != nil && result.Finalized {
		return nil, fmt.Errorf("%w: tournament result is finalized", ErrPredictionLocked)
	}

	if input.ChampionTeamID == input.RunnerUpTeamID {
		return nil, fmt.Errorf("%w: champion and runner-up must differ", ErrValidationFailed)
	}
	if input.ChampionTeamID <= 0 || input.RunnerUpTeamID <= 0 ||
		input.TopScorerPlayerID <= 0 || input.BestPlayerPlayerID <= 0 || input.BestGoalkeeperPlayerID <= 0 {
		return nil, fmt.Errorf("%w: all tournament picks are required", ErrValidationFailed)
	}

	prediction := &models.TournamentPrediction{
		UserID:                 userID,
		ChampionTeamID:         input.ChampionTeamID,
		RunnerUpTeamID:         input.RunnerUpTeamID,
		TopScorerPlayerID:      input.TopScorerPlayerID,
		BestPlayerPlayerID:     input.BestPlayerPlayerID,
		BestGoalkeeperPlayerID: input.BestGoalkeeperPlayerID,
	}
	if err := s.tournamentPredRepo.Upsert(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to save tournament prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) ListUserPredictions(ctx context.Context, userID int) (*UserPredictions, error) {
	groups, err := s.groupPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group predictions: %w", err)
	}
	matches, err := s.matchPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match predictions: %w", err)
	}
	knockouts, err := s.knockoutPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list knockout predictions: %w", err)
	}
	tournament, err := s.tournamentPredRepo.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrTournamentPredictionNotFound) {
		return nil, fmt.Errorf("failed to get tournament prediction: %w", err)
	}

	return &UserPredictions{
		Groups:     groups,
		Matches:    matches,
		Knockouts:  knockouts,
		Tournament: tournament,
	}, nil
}

func (s *predictionService) DeletePrediction(ctx context.Context, userID int, category models.PredictionCategory, predictionID int) error {
	var err error
	switch category {
	case models.CategoryGroup:
		err = s.groupPredRepo.Delete(ctx, predictionID, userID)
	case models.CategoryMatch:
		err = s.matchPredRepo.Delete(ctx, predictionID, userID)
	case models.CategoryKnockout:
		err = s.knockoutPredRepo.Delete(ctx, predictionID, userID)
	case models.CategoryTournament:
		err = s.tournamentPredRepo.Delete(ctx, predictionID, userID)
	default:
		return fmt.Errorf("%w: unknown prediction category %q", ErrValidationFailed, category)
	}
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrGroupPredictionNotFound),
			errors.Is(err, repositories.ErrMatchPredictionNotFound),
			errors.Is(err, repositories.ErrKnockoutPredictionNotFound),
			errors.Is(err, repositories.ErrTournamentPredictionNotFound):
			return ErrPredictionNotFound
		}
		return fmt.Errorf("failed to delete %s prediction %d: %w", category, predictionID, err)
	}

	if _, err := s.aggregates.RecomputeUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to recompute aggregate after delete: %w", err)
	}
	return nil
}

func (s *predictionService) loadMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	return match, nil
}

func (s *predictionService) verifyTeamInGroup(ctx context.Context, teamID int, groupCode string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return fmt.Errorf("%w: team %d", ErrTeamNotFound, teamID)
		}
		return fmt.Errorf("failed to load team %d: %w", teamID, err)
	}
	if team.GroupCode == nil || *team.GroupCode != groupCode {
		return fmt.Errorf("%w: team %s is not in group %s", ErrTeamNotInGroup, team.Code, groupCode)
	}
	return nil
}
