package models

import "time"

type Player struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	TeamID    int       `json:"team_id"`
	Team      *Team     `json:"team,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
