package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/arena-gg/arena-server/brackets"
	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/repositories"
	"github.com/arena-gg/arena-server/store"
	"github.com/stretchr/testify/require"
)

// testEnv wires the services against a real file store in a temp directory.
type testEnv struct {
	tournaments repositories.TournamentRepository
	players     repositories.PlayerRepository
	playerSvc   PlayerService
	tournSvc    TournamentService
	matchSvc    MatchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	locks := NewTournamentLocks()

	tournaments := repositories.NewTournamentRepository(st)
	players := repositories.NewPlayerRepository(st)
	playerSvc := NewPlayerService(players)

	return &testEnv{
		tournaments: tournaments,
		players:     players,
		playerSvc:   playerSvc,
		tournSvc: NewTournamentService(
			tournaments, players, playerSvc, brackets.NewSeededBuilder(42), locks, logger),
		matchSvc: NewMatchService(tournaments, playerSvc, locks, logger),
	}
}

// startedTournament creates a tournament with n registered wallets and starts
// it.
func startedTournament(t *testing.T, env *testEnv, n int) *models.Tournament {
	t.Helper()
	ctx := context.Background()

	created, err := env.tournSvc.Create(ctx, CreateTournamentInput{
		Name:   fmt.Sprintf("cup-%d", n),
		GameID: "fifa",
	})
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		_, err := env.tournSvc.Register(ctx, created.ID, RegisterParticipantInput{
			Wallet:      fmt.Sprintf("0xWallet%04d", i+1),
			DisplayName: fmt.Sprintf("Player %d", i+1),
		})
		require.NoError(t, err)
	}

	started, err := env.tournSvc.Start(ctx, created.ID)
	require.NoError(t, err)
	return started
}

// submitAgreed submits the same score from both players of a match,
// settling it without admin involvement.
func submitAgreed(t *testing.T, env *testEnv, tournamentID string, m *models.Match, score1, score2 int) {
	t.Helper()
	ctx := context.Background()

	_, err := env.matchSvc.SubmitResult(ctx, tournamentID, m.ID, m.Player1.ID, score1, score2)
	require.NoError(t, err)
	_, err = env.matchSvc.SubmitResult(ctx, tournamentID, m.ID, m.Player2.ID, score1, score2)
	require.NoError(t, err)
}
