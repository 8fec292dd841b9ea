package models

// Participant is a snapshot of a player taken at registration time.
// It is copied by value into bracket slots, so later profile edits do not
// rewrite historical bracket entries.
type Participant struct {
	ID          string `json:"id"`
	Wallet      string `json:"wallet"`
	DisplayName string `json:"display_name"`
}
