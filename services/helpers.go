package services

import (
	"context"
	"errors"
	"time"

	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/repositories"
	"github.com/arena-gg/arena-server/store"
)

// loadTournament fetches a tournament, mapping store absence to the service
// not-found sentinel. Corrupt documents are passed through untouched so they
// surface as server-side failures instead of reading as empty state.
func loadTournament(ctx context.Context, repo repositories.TournamentRepository, id string) (*models.Tournament, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

// completeMatch records a final score on a match. The winner is the player
// with the higher score; callers must have rejected equal scores already.
func completeMatch(m *models.Match, score1, score2 int, by models.CompletedBy) {
	winner := m.Player1
	if score2 > score1 {
		winner = m.Player2
	}
	now := time.Now().UTC()
	m.Score1 = &score1
	m.Score2 = &score2
	m.Winner = &winner
	m.Status = models.MatchStatusCompleted
	m.CompletedAt = &now
	m.CompletedBy = by
}

// finishTournament moves a tournament to its terminal state with the given
// champion.
func finishTournament(t *models.Tournament, winner models.Participant) {
	now := time.Now().UTC()
	t.Status = models.TournamentStatusFinished
	t.FinishedAt = &now
	t.Winner = &winner
}
