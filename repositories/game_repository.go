package repositories

import (
	"context"
	"fmt"

	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/store"
)

const gameKeyPrefix = "game:"

type GameRepository interface {
	GetByID(ctx context.Context, id string) (*models.Game, error)
	Save(ctx context.Context, g *models.Game) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Game, error)
}

type gameRepository struct {
	store store.DocumentStore
}

func NewGameRepository(s store.DocumentStore) GameRepository {
	return &gameRepository{store: s}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	var g models.Game
	if err := r.store.Get(ctx, gameKey(id), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) Save(ctx context.Context, g *models.Game) error {
	if err := r.store.Put(ctx, gameKey(g.ID), g); err != nil {
		return fmt.Errorf("failed to save game %s: %w", g.ID, err)
	}
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, gameKey(id))
}

func (r *gameRepository) List(ctx context.Context) ([]*models.Game, error) {
	keys, err := r.store.Keys(ctx, gameKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list game keys: %w", err)
	}
	games := make([]*models.Game, 0, len(keys))
	for _, key := range keys {
		var g models.Game
		if err := r.store.Get(ctx, key, &g); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", key, err)
		}
		games = append(games, &g)
	}
	return games, nil
}
