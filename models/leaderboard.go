package models

// UserAggregate is the denormalized per-user summary kept on the users row.
type UserAggregate struct {
	UserID         int `json:"user_id"`
	TotalPoints    int `json:"total_points"`
	CorrectMatches int `json:"correct_matches"`
	CorrectScores  int `json:"correct_scores"`
}

// LeaderboardEntry is a read-time projection, never stored. Position uses
// standard competition ranking: 1 + the number of users with a strictly
// better (total_points, correct_scores, correct_matches) tuple, so full ties
// share a position.
type LeaderboardEntry struct {
	Position       int    `json:"position"`
	UserID         int    `json:"user_id"`
	Nickname       string `json:"nickname"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	TotalPoints    int    `json:"total_points"`
	CorrectMatches int    `json:"correct_matches"`
	CorrectScores  int    `json:"correct_scores"`
}

type UserPosition struct {
	UserID           int `json:"user_id"`
	Position         int `json:"position"`
	TotalRankedUsers int `json:"total_ranked_users"`
	Percentile       int `json:"percentile"`
}
