package models

import "time"

// GroupStanding holds the finalized top three of a group. It exists only once
// the group stage of that group is complete; until then predictions against
// the group stay unscored.
type GroupStanding struct {
	GroupCode    string     `json:"group_code"`
	FirstTeamID  int        `json:"first_team_id"`
	SecondTeamID int        `json:"second_team_id"`
	ThirdTeamID  int        `json:"third_team_id"`
	Finalized    bool       `json:"finalized"`
	FinalizedAt  *time.Time `json:"finalized_at,omitempty"`
}
