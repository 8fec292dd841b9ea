package models

import "time"

// Game is a catalog entry for a supported title (FIFA, Call of Duty, ...).
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	LogoKey     *string   `json:"logo_key,omitempty"`
	LogoURL     *string   `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
