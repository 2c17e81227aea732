package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusFinished   MatchStatus = "finished"
	MatchStatusCanceled   MatchStatus = "canceled"
)

// MatchWinner is the outcome of a match from the home side's perspective.
type MatchWinner string

const (
	WinnerHome MatchWinner = "HOME"
	WinnerAway MatchWinner = "AWAY"
	WinnerDraw MatchWinner = "DRAW"
)

type KnockoutStage string

const (
	StageRoundOf32    KnockoutStage = "round_of_32"
	StageRoundOf16    KnockoutStage = "round_of_16"
	StageQuarterFinal KnockoutStage = "quarter_final"
	StageSemiFinal    KnockoutStage = "semi_final"
	StageThirdPlace   KnockoutStage = "third_place"
	StageFinal        KnockoutStage = "final"
)

// Match covers both group-stage fixtures (GroupCode set, Stage nil) and
// knockout fixtures (Stage set, GroupCode nil).
type Match struct {
	ID         int            `json:"id"`
	GroupCode  *string        `json:"group_code,omitempty"`
	Stage      *KnockoutStage `json:"stage,omitempty"`
	HomeTeamID int            `json:"home_team_id"`
	AwayTeamID int            `json:"away_team_id"`
	HomeGoals  *int           `json:"home_goals,omitempty"`
	AwayGoals  *int           `json:"away_goals,omitempty"`
	Status     MatchStatus    `json:"status"`
	KickoffAt  time.Time      `json:"kickoff_at"`

	HomeTeam *Team `json:"home_team,omitempty"`
	AwayTeam *Team `json:"away_team,omitempty"`
}

// HasFinalScore reports whether the match is in a terminal state with both
// scores recorded, i.e. whether it may be scored against.
func (m *Match) HasFinalScore() bool {
	return m.Status == MatchStatusFinished && m.HomeGoals != nil && m.AwayGoals != nil
}
