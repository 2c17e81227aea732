package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quiniela26/prediction-system/models"
	"github.com/quiniela26/prediction-system/repositories"
)

// EventPublisher pushes live events to connected clients. The hub implements
// it; a nil publisher simply drops events.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

const (
	EventMatchResult     = "match_result"
	EventGroupFinalized  = "group_finalized"
	EventAwardsFinalized = "awards_finalized"
)

type CreateMatchInput struct {
	GroupCode  *string               `json:"group_code,omitempty"`
	Stage      *models.KnockoutStage `json:"stage,omitempty"`
	HomeTeamID int                   `json:"home_team_id"`
	AwayTeamID int                   `json:"away_team_id"`
	KickoffAt  time.Time             `json:"kickoff_at"`
}

type RecordResultInput struct {
	HomeGoals int `json:"home_goals"`
	AwayGoals int `json:"away_goals"`
}

type GroupStandingInput struct {
	FirstTeamID  int  `json:"first_team_id"`
	SecondTeamID int  `json:"second_team_id"`
	ThirdTeamID  int  `json:"third_team_id"`
	Finalized    bool `json:"finalized"`
}

type TournamentResultInput struct {
	ChampionTeamID         int  `json:"champion_team_id"`
	RunnerUpTeamID         int  `json:"runner_up_team_id"`
	TopScorerPlayerID      int  `json:"top_scorer_player_id"`
	BestPlayerPlayerID     int  `json:"best_player_player_id"`
	BestGoalkeeperPlayerID int  `json:"best_goalkeeper_player_id"`
	Finalized              bool `json:"finalized"`
}

// MatchService manages the fixture list and the official results. Recording
// a final score immediately triggers scoring for that match and pushes the
// result to live subscribers.
type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, groupCode *string, stage *models.KnockoutStage, status *models.MatchStatus) ([]*models.Match, error)
	RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.FinalizationSummary, error)
	RecordGroupStanding(ctx context.Context, groupCode string, input GroupStandingInput) (*models.GroupStanding, error)
	RecordTournamentResult(ctx context.Context, input TournamentResultInput) (*models.TournamentResult, error)
	ListGroupStandings(ctx context.Context) ([]*models.GroupStanding, error)
	GetTournamentResult(ctx context.Context) (*models.TournamentResult, error)
}

type matchService struct {
	matchRepo            repositories.MatchRepository
	teamRepo             repositories.TeamRepository
	groupStandingRepo    repositories.GroupStandingRepository
	tournamentResultRepo repositories.TournamentResultRepository
	scoringSvc           ScoringService
	publisher            EventPublisher
	logger               *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	groupStandingRepo repositories.GroupStandingRepository,
	tournamentResultRepo repositories.TournamentResultRepository,
	scoringSvc ScoringService,
	publisher EventPublisher,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:            matchRepo,
		teamRepo:             teamRepo,
		groupStandingRepo:    groupStandingRepo,
		tournamentResultRepo: tournamentResultRepo,
		scoringSvc:           scoringSvc,
		publisher:            publisher,
		logger:               logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	// Exactly one of group code and knockout stage marks the match's phase.
	if (input.GroupCode == nil) == (input.Stage == nil) {
		return nil, fmt.Errorf("%w: a match belongs to either a group or a knockout stage", ErrValidationFailed)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrValidationFailed)
	}
	if input.Stage != nil && !validStage(*input.Stage) {
		return nil, fmt.Errorf("%w: unknown knockout stage %q", ErrValidationFailed, *input.Stage)
	}
	if input.KickoffAt.IsZero() {
		return nil, fmt.Errorf("%w: kickoff time is required", ErrValidationFailed)
	}

	if input.GroupCode != nil {
		for _, teamID := range []int{input.HomeTeamID, input.AwayTeamID} {
			if err := s.verifyTeamInGroup(ctx, teamID, *input.GroupCode); err != nil {
				return nil, err
			}
		}
	}

	match := &models.Match{
		GroupCode:  input.GroupCode,
		Stage:      input.Stage,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		Status:     models.MatchStatusScheduled,
		KickoffAt:  input.KickoffAt,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, fmt.Errorf("%w: unknown team", ErrTeamNotFound)
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, groupCode *string, stage *models.KnockoutStage, status *models.MatchStatus) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, groupCode, stage, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.FinalizationSummary, error) {
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return nil, fmt.Errorf("%w: goals must not be negative", ErrValidationFailed)
	}

	match, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == models.MatchStatusCanceled {
		return nil, fmt.Errorf("%w: match %d is canceled", ErrValidationFailed, matchID)
	}

	if err := s.matchRepo.UpdateResult(ctx, nil, matchID, input.HomeGoals, input.AwayGoals, models.MatchStatusFinished); err != nil {
		return nil, fmt.Errorf("failed to record result for match %d: %w", matchID, err)
	}

	summary, err := s.scoringSvc.FinalizeMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	s.publish(EventMatchResult, map[string]interface{}{
		"match_id":   matchID,
		"home_goals": input.HomeGoals,
		"away_goals": input.AwayGoals,
	})
	return summary, nil
}

func (s *matchService) RecordGroupStanding(ctx context.Context, groupCode string, input GroupStandingInput) (*models.GroupStanding, error) {
	if input.FirstTeamID == input.SecondTeamID || input.FirstTeamID == input.ThirdTeamID || input.SecondTeamID == input.ThirdTeamID {
		return nil, fmt.Errorf("%w: group standing must name three distinct teams", ErrValidationFailed)
	}
	for _, teamID := range []int{input.FirstTeamID, input.SecondTeamID, input.ThirdTeamID} {
		if err := s.verifyTeamInGroup(ctx, teamID, groupCode); err != nil {
			return nil, err
		}
	}

	standing := &models.GroupStanding{
		GroupCode:    groupCode,
		FirstTeamID:  input.FirstTeamID,
		SecondTeamID: input.SecondTeamID,
		ThirdTeamID:  input.ThirdTeamID,
		Finalized:    input.Finalized,
	}
	if input.Finalized {
		now := time.Now().UTC()
		standing.FinalizedAt = &now
	}
	if err := s.groupStandingRepo.Upsert(ctx, standing); err != nil {
		return nil, fmt.Errorf("failed to save standings for group %s: %w", groupCode, err)
	}

	if input.Finalized {
		s.publish(EventGroupFinalized, map[string]interface{}{"group_code": groupCode})
	}
	return standing, nil
}

func (s *matchService) RecordTournamentResult(ctx context.Context, input TournamentResultInput) (*models.TournamentResult, error) {
	if input.ChampionTeamID == input.RunnerUpTeamID {
		return nil, fmt.Errorf("%w: champion and runner-up must differ", ErrValidationFailed)
	}
	if input.ChampionTeamID <= 0 || input.RunnerUpTeamID <= 0 ||
		input.TopScorerPlayerID <= 0 || input.BestPlayerPlayerID <= 0 || input.BestGoalkeeperPlayerID <= 0 {
		return nil, fmt.Errorf("%w: all award fields are required", ErrValidationFailed)
	}

	result := &models.TournamentResult{
		ChampionTeamID:         input.ChampionTeamID,
		RunnerUpTeamID:         input.RunnerUpTeamID,
		TopScorerPlayerID:      input.TopScorerPlayerID,
		BestPlayerPlayerID:     input.BestPlayerPlayerID,
		BestGoalkeeperPlayerID: input.BestGoalkeeperPlayerID,
		Finalized:              input.Finalized,
	}
	if input.Finalized {
		now := time.Now().UTC()
		result.FinalizedAt = &now
	}
	if err := s.tournamentResultRepo.Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save tournament result: %w", err)
	}

	if input.Finalized {
		s.publish(EventAwardsFinalized, map[string]interface{}{
			"champion_team_id":  input.ChampionTeamID,
			"runner_up_team_id": input.RunnerUpTeamID,
		})
	}
	return result, nil
}

func (s *matchService) ListGroupStandings(ctx context.Context) ([]*models.GroupStanding, error) {
	standings, err := s.groupStandingRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list group standings: %w", err)
	}
	return standings, nil
}

func (s *matchService) GetTournamentResult(ctx context.Context) (*models.TournamentResult, error) {
	result, err := s.tournamentResultRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentResultNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load tournament result: %w", err)
	}
	return result, nil
}

func (s *matchService) publish(eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(eventType, payload)
}

func (s *matchService) verifyTeamInGroup(ctx context.Context, teamID int, groupCode string) error {
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

func validStage(stage models.KnockoutStage) bool {
	switch stage {
	case models.StageRoundOf32, models.StageRoundOf16, models.StageQuarterFinal,
		models.StageSemiFinal, models.StageThirdPlace, models.StageFinal:
		return true
	}
	return false
}
