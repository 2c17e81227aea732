package models

import "time"

// TournamentResult is the single record of the tournament's final awards.
// There is at most one row; it is written by the admin and read by the
// tournament scorer once Finalized is set.
type TournamentResult struct {
	ChampionTeamID       int        `json:"champion_team_id"`
	RunnerUpTeamID       int        `json:"runner_up_team_id"`
	TopScorerPlayerID    int        `json:"top_scorer_player_id"`
	BestPlayerPlayerID   int        `json:"best_player_player_id"`
	BestGoalkeeperPlayerID int      `json:"best_goalkeeper_player_id"`
	Finalized            bool       `json:"finalized"`
	FinalizedAt          *time.Time `json:"finalized_at,omitempty"`
}
