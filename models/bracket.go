package models

// Round is the ordered set of matches opened together.
type Round []*Match

// Bracket is the full single-elimination structure of a started tournament.
// Rounds grow as play advances; PlayersWithByes is drained into the round-2
// pairing pool exactly once.
type Bracket struct {
	BracketSize     int           `json:"bracket_size"`
	TotalRounds     int           `json:"total_rounds"`
	CurrentRound    int           `json:"current_round"`
	Rounds          []Round       `json:"rounds"`
	PlayersWithByes []Participant `json:"players_with_byes"`
	IsComplete      bool          `json:"is_complete"`
	Winner          *Participant  `json:"winner,omitempty"`
}

// FindMatch locates a match by id, returning the match and its round index.
func (b *Bracket) FindMatch(matchID string) (*Match, int) {
	for ri, round := range b.Rounds {
		for _, m := range round {
			if m.ID == matchID {
				return m, ri
			}
		}
	}
	return nil, -1
}
