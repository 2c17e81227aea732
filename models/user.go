package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RolePlayer UserRole = "player"
)

type User struct {
	ID           int      `json:"id"`
	Nickname     string   `json:"nickname"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AvatarKey    *string  `json:"-"`
	AvatarURL    string   `json:"avatar_url,omitempty"`

	// Aggregate fields derived from prediction records. Written only by
	// AggregateService.RecomputeUser.
	TotalPoints    int `json:"total_points"`
	CorrectMatches int `json:"correct_matches"`
	CorrectScores  int `json:"correct_scores"`

	CreatedAt time.Time `json:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
