package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/repositories"
	"github.com/arena-gg/arena-server/store"
)

type UpsertPlayerInput struct {
	Wallet      string            `json:"wallet"`
	DisplayName string            `json:"display_name"`
	Gamertags   map[string]string `json:"gamertags"`
}

// PlayerService is the participant registry, keyed by wallet address
// (case-insensitive). Tournament completion reports wins here; the documents
// are disjoint from tournament documents, so no tournament lock is taken.
type PlayerService interface {
	Lookup(ctx context.Context, wallet string) (*models.PlayerProfile, error)
	UpsertProfile(ctx context.Context, input UpsertPlayerInput) (*models.PlayerProfile, error)
	SetGamertag(ctx context.Context, wallet, gameID, tag string) (*models.PlayerProfile, error)
	RecordWin(ctx context.Context, wallet, gameID string) error
	Leaderboard(ctx context.Context, limit int) ([]*models.PlayerProfile, error)
}

type playerService struct {
	players repositories.PlayerRepository
}

func NewPlayerService(players repositories.PlayerRepository) PlayerService {
	return &playerService{players: players}
}

func (s *playerService) Lookup(ctx context.Context, wallet string) (*models.PlayerProfile, error) {
	if models.NormalizeWallet(wallet) == "" {
		return nil, ErrWalletRequired
	}
	p, err := s.players.GetByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *playerService) UpsertProfile(ctx context.Context, input UpsertPlayerInput) (*models.PlayerProfile, error) {
	if models.NormalizeWallet(input.Wallet) == "" {
		return nil, ErrWalletRequired
	}

	now := time.Now().UTC()
	p, err := s.players.GetByWallet(ctx, input.Wallet)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		p = &models.PlayerProfile{Wallet: input.Wallet, CreatedAt: now}
	case err != nil:
		return nil, err
	}

	if input.DisplayName != "" {
		p.DisplayName = input.DisplayName
	}
	for gameID, tag := range input.Gamertags {
		if p.Gamertags == nil {
			p.Gamertags = make(map[string]string)
		}
		p.Gamertags[gameID] = tag
	}
	p.UpdatedAt = now

	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *playerService) SetGamertag(ctx context.Context, wallet, gameID, tag string) (*models.PlayerProfile, error) {
	if gameID == "" || tag == "" {
		return nil, fmt.Errorf("%w: game id and gamertag are required", ErrValidationFailed)
	}
	return s.UpsertProfile(ctx, UpsertPlayerInput{
		Wallet:    wallet,
		Gamertags: map[string]string{gameID: tag},
	})
}

// RecordWin bumps the aggregate win counters for a tournament champion. A
// missing profile is created on the fly so wins are never lost for wallets
// that skipped profile setup.
func (s *playerService) RecordWin(ctx context.Context, wallet, gameID string) error {
	if models.NormalizeWallet(wallet) == "" {
		return ErrWalletRequired
	}

	now := time.Now().UTC()
	p, err := s.players.GetByWallet(ctx, wallet)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		p = &models.PlayerProfile{Wallet: wallet, CreatedAt: now}
	case err != nil:
		return err
	}

	p.TotalWins++
	if gameID != "" {
		if p.GameStats == nil {
			p.GameStats = make(map[string]models.PlayerGameStats)
		}
		stats := p.GameStats[gameID]
		stats.Wins++
		stats.TournamentsPlayed++
		p.GameStats[gameID] = stats
	}
	p.UpdatedAt = now

	return s.players.Save(ctx, p)
}

func (s *playerService) Leaderboard(ctx context.Context, limit int) ([]*models.PlayerProfile, error) {
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(players, func(a, b *models.PlayerProfile) int {
		if a.TotalWins != b.TotalWins {
			return b.TotalWins - a.TotalWins
		}
		return cmpWallets(a.Wallet, b.Wallet)
	})
	if limit > 0 && limit < len(players) {
		players = players[:limit]
	}
	return players, nil
}

func cmpWallets(a, b string) int {
	na, nb := models.NormalizeWallet(a), models.NormalizeWallet(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return 0
}
