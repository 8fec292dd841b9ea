package brackets

import (
	"errors"
	"math/bits"
	"math/rand"

	"github.com/arena-gg/arena-server/models"
	"github.com/google/uuid"
)

var ErrNotEnoughParticipants = errors.New("not enough participants to generate a single elimination bracket (minimum 2)")

// Builder generates randomized single-elimination brackets. The RNG is owned
// by the builder so tests can seed it.
type Builder struct {
	rng *rand.Rand
}

func NewBuilder() *Builder {
	return &Builder{rng: rand.New(rand.NewSource(rand.Int63()))}
}

// NewSeededBuilder returns a builder with a deterministic shuffle order.
func NewSeededBuilder(seed uint64) *Builder {
	return &Builder{rng: rand.New(rand.NewSource(int64(seed)))}
}

// BracketSizeFor returns the smallest power of two >= n.
func BracketSizeFor(n int) int {
	if n <= 1 {
		return n
	}
	return 1 << bits.Len(uint(n-1))
}

// Build produces the initial bracket for the given participants: a uniform
// shuffle, bye selection for the non-power-of-two remainder, and consecutive
// pairing of the rest into round 1. Byes are drawn from the shuffled order
// rather than fixed seeds, so no slot carries a systematic advantage.
func (b *Builder) Build(participants []models.Participant) (*models.Bracket, error) {
	n := len(participants)
	if n < 2 {
		return nil, ErrNotEnoughParticipants
	}

	pool := make([]models.Participant, n)
	copy(pool, participants)
	b.rng.Shuffle(n, func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	size := BracketSizeFor(n)
	totalRounds := bits.Len(uint(size)) - 1
	numByes := size - n

	// A prefix of a uniform permutation is itself a uniform draw without
	// replacement, so the first numByes shuffled participants take the byes.
	byePlayers := make([]models.Participant, 0, numByes)
	if numByes > 0 {
		byePlayers = append(byePlayers, pool[:numByes]...)
		pool = pool[numByes:]
	}

	return &models.Bracket{
		BracketSize:     size,
		TotalRounds:     totalRounds,
		CurrentRound:    1,
		Rounds:          []models.Round{pairConsecutive(pool)},
		PlayersWithByes: byePlayers,
	}, nil
}

// pairConsecutive pairs pool[0] vs pool[1], pool[2] vs pool[3], and so on.
// Round pools after bye assignment are always even-sized.
func pairConsecutive(pool []models.Participant) models.Round {
	round := make(models.Round, 0, len(pool)/2)
	for i := 0; i+1 < len(pool); i += 2 {
		round = append(round, &models.Match{
			ID:      uuid.New().String(),
			Player1: pool[i],
			Player2: pool[i+1],
			Status:  models.MatchStatusPending,
		})
	}
	return round
}
