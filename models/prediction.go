package models

import "time"

type PredictionCategory string

const (
	CategoryGroup      PredictionCategory = "group"
	CategoryMatch      PredictionCategory = "match"
	CategoryKnockout   PredictionCategory = "knockout"
	CategoryTournament PredictionCategory = "tournament"
)

// GroupPrediction is one user's guess at a group's top three. The third place
// is optional: a missing third never scores but never penalizes either.
// One prediction per user per group.
type GroupPrediction struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	GroupCode     string    `json:"group_code"`
	FirstTeamID   int       `json:"first_team_id"`
	SecondTeamID  int       `json:"second_team_id"`
	ThirdTeamID   *int      `json:"third_team_id,omitempty"`
	PointsAwarded int       `json:"points_awarded"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MatchPrediction is one user's guess at a match outcome and exact scoreline.
// One prediction per user per match. The correctness flags and PointsAwarded
// are written exclusively by the scoring engine.
type MatchPrediction struct {
	ID                 int         `json:"id"`
	UserID             int         `json:"user_id"`
	MatchID            int         `json:"match_id"`
	PredictedWinner    MatchWinner `json:"predicted_winner"`
	PredictedHomeGoals int         `json:"predicted_home_goals"`
	PredictedAwayGoals int         `json:"predicted_away_goals"`
	PointsAwarded      int         `json:"points_awarded"`
	IsCorrectWinner    bool        `json:"is_correct_winner"`
	IsCorrectScore     bool        `json:"is_correct_score"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// KnockoutPrediction is one user's guess at the winner of a knockout fixture.
// One prediction per user per match. IsCorrect stays nil while the linked
// match is unplayed or drawn; a drawn knockout scoreline is indeterminate and
// scores zero without counting as a wrong guess.
type KnockoutPrediction struct {
	ID                    int           `json:"id"`
	UserID                int           `json:"user_id"`
	MatchID               int           `json:"match_id"`
	Stage                 KnockoutStage `json:"stage"`
	PredictedWinnerTeamID int           `json:"predicted_winner_team_id"`
	PointsAwarded         int           `json:"points_awarded"`
	IsCorrect             *bool         `json:"is_correct"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// TournamentPrediction is one user's guess at the tournament awards.
// At most one per user.
type TournamentPrediction struct {
	ID                     int       `json:"id"`
	UserID                 int       `json:"user_id"`
	ChampionTeamID         int       `json:"champion_team_id"`
	RunnerUpTeamID         int       `json:"runner_up_team_id"`
	TopScorerPlayerID      int       `json:"top_scorer_player_id"`
	BestPlayerPlayerID     int       `json:"best_player_player_id"`
	BestGoalkeeperPlayerID int       `json:"best_goalkeeper_player_id"`
	PointsAwarded          int       `json:"points_awarded"`
	UpdatedAt              time.Time `json:"updated_at"`
}
