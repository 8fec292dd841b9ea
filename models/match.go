package models

import (
	"strings"
	"time"
)

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusCompleted MatchStatus = "completed"
)

// CompletedBy records which path completed a match.
type CompletedBy string

const (
	CompletedByAuto  CompletedBy = "auto"
	CompletedByAdmin CompletedBy = "admin"
)

// SubmittedResult is one party's claim about a match outcome. A match holds
// at most two, one per distinct submitter.
type SubmittedResult struct {
	SubmittedBy string    `json:"submitted_by"`
	Score1      int       `json:"score1"`
	Score2      int       `json:"score2"`
	SubmittedAt time.Time `json:"submitted_at"`
	Conflict    bool      `json:"conflict"`
}

// Match pairs two participants. Both slots are fixed at creation and never
// change. Completed implies winner is one of the two players and the scores
// differ.
type Match struct {
	ID             string            `json:"id"`
	Player1        Participant       `json:"player1"`
	Player2        Participant       `json:"player2"`
	Status         MatchStatus       `json:"status"`
	Winner         *Participant      `json:"winner,omitempty"`
	Score1         *int              `json:"score1,omitempty"`
	Score2         *int              `json:"score2,omitempty"`
	PendingResults []SubmittedResult `json:"pending_results,omitempty"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	CompletedBy    CompletedBy       `json:"completed_by,omitempty"`
}

// HasPlayer reports whether the given participant id belongs to this match.
func (m *Match) HasPlayer(participantID string) bool {
	return m.Player1.ID == participantID || m.Player2.ID == participantID
}

// PlayerByID returns the participant with the given id, or nil.
func (m *Match) PlayerByID(participantID string) *Participant {
	switch participantID {
	case m.Player1.ID:
		return &m.Player1
	case m.Player2.ID:
		return &m.Player2
	}
	return nil
}

// SubmissionBy returns the pending result submitted by the given participant,
// or nil if they have not submitted.
func (m *Match) SubmissionBy(participantID string) *SubmittedResult {
	for i := range m.PendingResults {
		if m.PendingResults[i].SubmittedBy == participantID {
			return &m.PendingResults[i]
		}
	}
	return nil
}

// InConflict reports whether the two submitted results disagree and the match
// is waiting on an admin.
func (m *Match) InConflict() bool {
	if m.Status == MatchStatusCompleted {
		return false
	}
	for i := range m.PendingResults {
		if m.PendingResults[i].Conflict {
			return true
		}
	}
	return false
}

// NormalizeWallet is the canonical form used for wallet comparisons and
// registry keys. Wallets are matched case-insensitively.
func NormalizeWallet(wallet string) string {
	return strings.ToLower(strings.TrimSpace(wallet))
}
