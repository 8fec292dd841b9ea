package brackets

import "github.com/arena-gg/arena-server/models"

// AdvanceRound inspects the round at roundIndex after one of its matches
// completed. If every match in the round is completed and the round is the
// currently active one, the winners (plus drained byes after round 1) either
// crown a champion or get paired consecutively into a newly appended round.
//
// It returns the champion when the bracket completed, and whether any
// bracket-level state changed. Calling it again on an already-advanced round
// is a no-op: a stale round can neither generate a duplicate round nor crown
// a false champion.
func AdvanceRound(b *models.Bracket, roundIndex int) (*models.Participant, bool) {
	if b == nil || b.IsComplete {
		return nil, false
	}
	if roundIndex < 0 || roundIndex >= len(b.Rounds) {
		return nil, false
	}
	// Only the active round may advance. Out-of-order completions happen
	// after an admin match reset and must not re-run advancement.
	if roundIndex+1 != b.CurrentRound {
		return nil, false
	}

	round := b.Rounds[roundIndex]
	advancing := make([]models.Participant, 0, len(round)+len(b.PlayersWithByes))
	for _, m := range round {
		if m.Status != models.MatchStatusCompleted || m.Winner == nil {
			return nil, false
		}
		advancing = append(advancing, *m.Winner)
	}

	// Bye players join the pool once, after the first round resolves.
	if roundIndex == 0 && len(b.PlayersWithByes) > 0 {
		advancing = append(advancing, b.PlayersWithByes...)
		b.PlayersWithByes = nil
	}

	if len(advancing) == 1 {
		winner := advancing[0]
		b.IsComplete = true
		b.Winner = &winner
		return &winner, true
	}

	b.CurrentRound++
	b.Rounds = append(b.Rounds, pairConsecutive(advancing))
	return nil, true
}
