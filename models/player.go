package models

import "time"

// PlayerGameStats are per-game aggregate counters on a profile.
type PlayerGameStats struct {
	Wins              int `json:"wins"`
	TournamentsPlayed int `json:"tournaments_played"`
}

// PlayerProfile is the registry document for a wallet. Profiles live in their
// own documents, disjoint from tournament documents.
type PlayerProfile struct {
	Wallet      string                     `json:"wallet"`
	DisplayName string                     `json:"display_name,omitempty"`
	Gamertags   map[string]string          `json:"gamertags,omitempty"`
	TotalWins   int                        `json:"total_wins"`
	GameStats   map[string]PlayerGameStats `json:"game_stats,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}
