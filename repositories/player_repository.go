package repositories

import (
	"context"
	"fmt"

	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/store"
)

const playerKeyPrefix = "player:"

// PlayerRepository is the participant registry, keyed by wallet address.
// Wallet lookups are case-insensitive.
type PlayerRepository interface {
	GetByWallet(ctx context.Context, wallet string) (*models.PlayerProfile, error)
	Save(ctx context.Context, p *models.PlayerProfile) error
	List(ctx context.Context) ([]*models.PlayerProfile, error)
}

type playerRepository struct {
	store store.DocumentStore
}

func NewPlayerRepository(s store.DocumentStore) PlayerRepository {
	return &playerRepository{store: s}
}

func playerKey(wallet string) string {
	return playerKeyPrefix + models.NormalizeWallet(wallet)
}

func (r *playerRepository) GetByWallet(ctx context.Context, wallet string) (*models.PlayerProfile, error) {
	var p models.PlayerProfile
	if err := r.store.Get(ctx, playerKey(wallet), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *playerRepository) Save(ctx context.Context, p *models.PlayerProfile) error {
	if err := r.store.Put(ctx, playerKey(p.Wallet), p); err != nil {
		return fmt.Errorf("failed to save player %s: %w", models.NormalizeWallet(p.Wallet), err)
	}
	return nil
}

func (r *playerRepository) List(ctx context.Context) ([]*models.PlayerProfile, error) {
	keys, err := r.store.Keys(ctx, playerKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list player keys: %w", err)
	}
	players := make([]*models.PlayerProfile, 0, len(keys))
	for _, key := range keys {
		var p models.PlayerProfile
		if err := r.store.Get(ctx, key, &p); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", key, err)
		}
		players = append(players, &p)
	}
	return players, nil
}
