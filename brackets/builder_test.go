package brackets

import (
	"fmt"
	"testing"

	"github.com/arena-gg/arena-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeParticipants(n int) []models.Participant {
	out := make([]models.Participant, n)
	for i := range out {
		out[i] = models.Participant{
			ID:          fmt.Sprintf("p%d", i+1),
			Wallet:      fmt.Sprintf("0xWallet%04d", i+1),
			DisplayName: fmt.Sprintf("Player %d", i+1),
		}
	}
	return out
}

func TestBuildRejectsTooFewParticipants(t *testing.T) {
	b := NewSeededBuilder(1)

	_, err := b.Build(nil)
	require.ErrorIs(t, err, ErrNotEnoughParticipants)

	_, err = b.Build(makeParticipants(1))
	require.ErrorIs(t, err, ErrNotEnoughParticipants)
}

func TestBracketSizeFor(t *testing.T) {
	cases := map[int]int{2: 2, 3: 4, 4: 4, 5: 8, 7: 8, 8: 8, 9: 16, 16: 16, 17: 32}
	for n, want := range cases {
		assert.Equal(t, want, BracketSizeFor(n), "n=%d", n)
	}
}

func TestBuildSizeAndPartitionInvariants(t *testing.T) {
	for n := 2; n <= 17; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			b := NewSeededBuilder(uint64(n))
			bracket, err := b.Build(makeParticipants(n))
			require.NoError(t, err)

			wantSize := BracketSizeFor(n)
			assert.Equal(t, wantSize, bracket.BracketSize)
			assert.Equal(t, 1, bracket.CurrentRound)
			assert.False(t, bracket.IsComplete)
			assert.Nil(t, bracket.Winner)
			require.Len(t, bracket.Rounds, 1)

			// Every participant lands in exactly one of round 1 or the bye set.
			round1 := bracket.Rounds[0]
			assert.Equal(t, n, 2*len(round1)+len(bracket.PlayersWithByes))

			seen := make(map[string]int)
			for _, m := range round1 {
				assert.Equal(t, models.MatchStatusPending, m.Status)
				assert.NotEmpty(t, m.ID)
				seen[m.Player1.ID]++
				seen[m.Player2.ID]++
			}
			for _, p := range bracket.PlayersWithByes {
				seen[p.ID]++
			}
			require.Len(t, seen, n)
			for id, count := range seen {
				assert.Equal(t, 1, count, "participant %s placed %d times", id, count)
			}
		})
	}
}

func TestBuildPowerOfTwoHasNoByes(t *testing.T) {
	b := NewSeededBuilder(42)
	bracket, err := b.Build(makeParticipants(8))
	require.NoError(t, err)

	assert.Empty(t, bracket.PlayersWithByes)
	assert.Len(t, bracket.Rounds[0], 4)
	assert.Equal(t, 3, bracket.TotalRounds)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	participants := makeParticipants(6)
	first := participants[0]

	_, err := NewSeededBuilder(7).Build(participants)
	require.NoError(t, err)

	assert.Equal(t, first, participants[0])
}

func TestSeededBuildIsDeterministic(t *testing.T) {
	participants := makeParticipants(9)

	a, err := NewSeededBuilder(123).Build(participants)
	require.NoError(t, err)
	b, err := NewSeededBuilder(123).Build(participants)
	require.NoError(t, err)

	require.Len(t, b.Rounds[0], len(a.Rounds[0]))
	for i := range a.Rounds[0] {
		assert.Equal(t, a.Rounds[0][i].Player1.ID, b.Rounds[0][i].Player1.ID)
		assert.Equal(t, a.Rounds[0][i].Player2.ID, b.Rounds[0][i].Player2.ID)
	}
	assert.Equal(t, a.PlayersWithByes, b.PlayersWithByes)
}
