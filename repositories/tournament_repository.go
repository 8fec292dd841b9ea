package repositories

import (
	"context"
	"fmt"

	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/store"
)

const tournamentKeyPrefix = "tournament:"

type TournamentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	Save(ctx context.Context, t *models.Tournament) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Tournament, error)
}

type tournamentRepository struct {
	store store.DocumentStore
}

func NewTournamentRepository(s store.DocumentStore) TournamentRepository {
	return &tournamentRepository{store: s}
}

func tournamentKey(id string) string {
	return tournamentKeyPrefix + id
}

func (r *tournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	var t models.Tournament
	if err := r.store.Get(ctx, tournamentKey(id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Save persists the whole tournament document, bracket included, in one write.
func (r *tournamentRepository) Save(ctx context.Context, t *models.Tournament) error {
	if err := r.store.Put(ctx, tournamentKey(t.ID), t); err != nil {
		return fmt.Errorf("failed to save tournament %s: %w", t.ID, err)
	}
	return nil
}

func (r *tournamentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, tournamentKey(id))
}

func (r *tournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	keys, err := r.store.Keys(ctx, tournamentKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament keys: %w", err)
	}
	tournaments := make([]*models.Tournament, 0, len(keys))
	for _, key := range keys {
		var t models.Tournament
		if err := r.store.Get(ctx, key, &t); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", key, err)
		}
		tournaments = append(tournaments, &t)
	}
	return tournaments, nil
}
