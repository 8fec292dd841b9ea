package models

import "time"

type TournamentStatus string

const (
	TournamentStatusRegistration TournamentStatus = "registration"
	TournamentStatusStarted      TournamentStatus = "started"
	TournamentStatusFinished     TournamentStatus = "finished"
)

// Tournament is the persisted aggregate: one document per tournament, bracket
// included. Status only moves forward, except for the administrative match
// reset which may revert finished back to started.
type Tournament struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	GameID       string           `json:"game_id,omitempty"`
	Status       TournamentStatus `json:"status"`
	Participants []Participant    `json:"participants"`
	Bracket      *Bracket         `json:"bracket,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	StartedAt    *time.Time       `json:"started_at,omitempty"`
	FinishedAt   *time.Time       `json:"finished_at,omitempty"`
	Winner       *Participant     `json:"winner,omitempty"`
}

// ParticipantByWallet returns the registered participant with the given
// wallet (case-insensitive), or nil.
func (t *Tournament) ParticipantByWallet(wallet string) *Participant {
	norm := NormalizeWallet(wallet)
	for i := range t.Participants {
		if NormalizeWallet(t.Participants[i].Wallet) == norm {
			return &t.Participants[i]
		}
	}
	return nil
}

// ParticipantByID returns the registered participant with the given id, or nil.
func (t *Tournament) ParticipantByID(id string) *Participant {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i]
		}
	}
	return nil
}
