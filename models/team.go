package models

import "time"

type Team struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"` // FIFA trigram, e.g. "ARG"
	Confederation string    `json:"confederation"`
	GroupCode     *string   `json:"group_code,omitempty"`
	FlagKey       *string   `json:"-"`
	FlagURL       string    `json:"flag_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
