package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/quiniela26/prediction-system/models"
	"github.com/quiniela26/prediction-system/repositories"
	"github.com/quiniela26/prediction-system/storage"
)

const teamCodeLength = 3

type CreateTeamInput struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Confederation string  `json:"confederation"`
	GroupCode     *string `json:"group_code,omitempty"`
}

type CreatePlayerInput struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	TeamID   int    `json:"team_id"`
}

// TeamService manages the competition roster: teams, their squads and flag
// images.
type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, groupCode *string) ([]*models.Team, error)
	UploadTeamFlag(ctx context.Context, teamID int, contentType string, body io.Reader) (*models.Team, error)
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context, teamID *int) ([]*models.Player, error)
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))

	if input.Name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrValidationFailed)
	}
	if len(input.Code) != teamCodeLength {
		return nil, fmt.Errorf("%w: team code must be a 3-letter trigram", ErrValidationFailed)
	}

	team := &models.Team{
		Name:          input.Name,
		Code:          input.Code,
		Confederation: input.Confederation,
		GroupCode:     input.GroupCode,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamCodeConflict) {
			return nil, ErrTeamCodeConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return s.withFlagURL(team), nil
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", id, err)
	}
	return s.withFlagURL(team), nil
}

func (s *teamService) ListTeams(ctx context.Context, groupCode *string) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, groupCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		s.withFlagURL(team)
	}
	return teams, nil
}

func (s *teamService) UploadTeamFlag(ctx context.Context, teamID int, contentType string, body io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", teamID, err)
	}

	key := fmt.Sprintf("flags/%s%s", strings.ToLower(team.Code), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to upload flag: %w", err)
	}

	if err := s.teamRepo.UpdateFlagKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to record flag key: %w", err)
	}
	if team.FlagKey != nil && *team.FlagKey != result.Key {
		_ = s.uploader.Delete(ctx, *team.FlagKey)
	}

	team.FlagKey = &result.Key
	return s.withFlagURL(team), nil
}

func (s *teamService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrValidationFailed)
	}

	player := &models.Player{
		Name:     input.Name,
		Position: input.Position,
		TeamID:   input.TeamID,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, fmt.Errorf("%w: team %d", ErrTeamNotFound, input.TeamID)
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *teamService) ListPlayers(ctx context.Context, teamID *int) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *teamService) withFlagURL(team *models.Team) *models.Team {
	if s.uploader != nil && team.FlagKey != nil {
		team.FlagURL = s.uploader.PublicURL(*team.FlagKey)
	}
	return team
}
