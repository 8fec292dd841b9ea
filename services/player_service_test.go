package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAndLookupIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.playerSvc.UpsertProfile(ctx, UpsertPlayerInput{
		Wallet:      "0xAbCd",
		DisplayName: "Shadow",
		Gamertags:   map[string]string{"fifa": "shadow_fc"},
	})
	require.NoError(t, err)

	profile, err := env.playerSvc.Lookup(ctx, "0XABCD")
	require.NoError(t, err)
	assert.Equal(t, "Shadow", profile.DisplayName)
	assert.Equal(t, "shadow_fc", profile.Gamertags["fifa"])

	_, err = env.playerSvc.Lookup(ctx, "0xUnknown")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestUpsertMergesGamertags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.playerSvc.UpsertProfile(ctx, UpsertPlayerInput{
		Wallet:    "0xAAA",
		Gamertags: map[string]string{"fifa": "one"},
	})
	require.NoError(t, err)

	profile, err := env.playerSvc.SetGamertag(ctx, "0xAAA", "cod", "two")
	require.NoError(t, err)
	assert.Equal(t, "one", profile.Gamertags["fifa"])
	assert.Equal(t, "two", profile.Gamertags["cod"])

	_, err = env.playerSvc.SetGamertag(ctx, "0xAAA", "", "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestRecordWinCreatesMissingProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.playerSvc.RecordWin(ctx, "0xNEW", "fifa"))
	require.NoError(t, env.playerSvc.RecordWin(ctx, "0xnew", "fifa"))

	profile, err := env.playerSvc.Lookup(ctx, "0xNEW")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.TotalWins)
	assert.Equal(t, 2, profile.GameStats["fifa"].Wins)
	assert.Equal(t, 2, profile.GameStats["fifa"].TournamentsPlayed)
}

func TestLeaderboardOrdersByTotalWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.playerSvc.RecordWin(ctx, "0xBBB", "fifa"))
	require.NoError(t, env.playerSvc.RecordWin(ctx, "0xCCC", "fifa"))
	require.NoError(t, env.playerSvc.RecordWin(ctx, "0xCCC", "cod"))
	require.NoError(t, env.playerSvc.RecordWin(ctx, "0xAAA", "fifa"))

	board, err := env.playerSvc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, "0xCCC", board[0].Wallet)
	assert.Equal(t, 2, board[0].TotalWins)
	// Ties break on wallet for a stable order.
	assert.Equal(t, "0xAAA", board[1].Wallet)
	assert.Equal(t, "0xBBB", board[2].Wallet)

	top, err := env.playerSvc.Leaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "0xCCC", top[0].Wallet)
}
