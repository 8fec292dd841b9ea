package brackets

import (
	"testing"
	"time"

	"github.com/arena-gg/arena-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeMatch marks a match as won by player1 (or player2 when flipped).
func completeMatch(m *models.Match, player2Wins bool) {
	s1, s2 := 2, 1
	winner := m.Player1
	if player2Wins {
		s1, s2 = 1, 2
		winner = m.Player2
	}
	now := time.Now()
	m.Score1, m.Score2 = &s1, &s2
	m.Winner = &winner
	m.Status = models.MatchStatusCompleted
	m.CompletedBy = models.CompletedByAuto
	m.CompletedAt = &now
}

func TestAdvanceNoOpWhileRoundUnfinished(t *testing.T) {
	bracket, err := NewSeededBuilder(5).Build(makeParticipants(4))
	require.NoError(t, err)

	completeMatch(bracket.Rounds[0][0], false)

	winner, changed := AdvanceRound(bracket, 0)
	assert.Nil(t, winner)
	assert.False(t, changed)
	assert.Len(t, bracket.Rounds, 1)
	assert.Equal(t, 1, bracket.CurrentRound)
}

func TestAdvanceOpensNextRound(t *testing.T) {
	bracket, err := NewSeededBuilder(5).Build(makeParticipants(4))
	require.NoError(t, err)

	completeMatch(bracket.Rounds[0][0], false)
	completeMatch(bracket.Rounds[0][1], true)

	winner, changed := AdvanceRound(bracket, 0)
	assert.Nil(t, winner)
	assert.True(t, changed)
	require.Len(t, bracket.Rounds, 2)
	assert.Equal(t, 2, bracket.CurrentRound)

	// Winners are paired in round order, no reseeding.
	final := bracket.Rounds[1]
	require.Len(t, final, 1)
	assert.Equal(t, bracket.Rounds[0][0].Winner.ID, final[0].Player1.ID)
	assert.Equal(t, bracket.Rounds[0][1].Winner.ID, final[0].Player2.ID)
}

func TestAdvanceDrainsByesAfterRoundOne(t *testing.T) {
	// 5 participants: bracket size 8, 3 byes, round 1 has a single match.
	bracket, err := NewSeededBuilder(9).Build(makeParticipants(5))
	require.NoError(t, err)
	require.Len(t, bracket.Rounds[0], 1)
	require.Len(t, bracket.PlayersWithByes, 3)

	byes := append([]models.Participant{}, bracket.PlayersWithByes...)
	completeMatch(bracket.Rounds[0][0], false)

	winner, changed := AdvanceRound(bracket, 0)
	assert.Nil(t, winner)
	assert.True(t, changed)
	assert.Empty(t, bracket.PlayersWithByes)
	require.Len(t, bracket.Rounds, 2)
	require.Len(t, bracket.Rounds[1], 2)

	// Round winner first, then byes in collection order.
	round2 := bracket.Rounds[1]
	assert.Equal(t, bracket.Rounds[0][0].Winner.ID, round2[0].Player1.ID)
	assert.Equal(t, byes[0].ID, round2[0].Player2.ID)
	assert.Equal(t, byes[1].ID, round2[1].Player1.ID)
	assert.Equal(t, byes[2].ID, round2[1].Player2.ID)
}

func TestAdvanceIsIdempotent(t *testing.T) {
	bracket, err := NewSeededBuilder(9).Build(makeParticipants(5))
	require.NoError(t, err)

	completeMatch(bracket.Rounds[0][0], false)
	_, changed := AdvanceRound(bracket, 0)
	require.True(t, changed)
	require.Len(t, bracket.Rounds, 2)

	// Re-running advancement on the drained first round must not duplicate
	// round 2 or crown its lone winner as champion.
	winner, changed := AdvanceRound(bracket, 0)
	assert.Nil(t, winner)
	assert.False(t, changed)
	assert.Len(t, bracket.Rounds, 2)
	assert.False(t, bracket.IsComplete)
}

func TestAdvanceCrownsChampion(t *testing.T) {
	bracket, err := NewSeededBuilder(3).Build(makeParticipants(2))
	require.NoError(t, err)
	require.Len(t, bracket.Rounds[0], 1)

	completeMatch(bracket.Rounds[0][0], true)

	winner, changed := AdvanceRound(bracket, 0)
	require.NotNil(t, winner)
	assert.True(t, changed)
	assert.True(t, bracket.IsComplete)
	assert.Equal(t, bracket.Rounds[0][0].Player2.ID, winner.ID)
	assert.Equal(t, winner.ID, bracket.Winner.ID)

	// Completed brackets never advance again.
	again, changed := AdvanceRound(bracket, 0)
	assert.Nil(t, again)
	assert.False(t, changed)
}

func TestFivePlayerBracketRunsToChampion(t *testing.T) {
	bracket, err := NewSeededBuilder(11).Build(makeParticipants(5))
	require.NoError(t, err)

	// Round 1: one match, three byes.
	completeMatch(bracket.Rounds[0][0], false)
	_, changed := AdvanceRound(bracket, 0)
	require.True(t, changed)
	require.Len(t, bracket.Rounds[1], 2)

	// Round 2: two matches.
	completeMatch(bracket.Rounds[1][0], false)
	completeMatch(bracket.Rounds[1][1], false)
	_, changed = AdvanceRound(bracket, 1)
	require.True(t, changed)
	require.Len(t, bracket.Rounds, 3)
	require.Len(t, bracket.Rounds[2], 1)
	assert.Equal(t, 3, bracket.CurrentRound)

	// Final.
	completeMatch(bracket.Rounds[2][0], false)
	winner, changed := AdvanceRound(bracket, 2)
	require.True(t, changed)
	require.NotNil(t, winner)
	assert.True(t, bracket.IsComplete)
	assert.Equal(t, bracket.Rounds[2][0].Winner.ID, winner.ID)
}
