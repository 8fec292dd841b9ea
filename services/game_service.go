package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/repositories"
	"github.com/arena-gg/arena-server/storage"
	"github.com/arena-gg/arena-server/store"
	"github.com/google/uuid"
)

type CreateGameInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GameService manages the catalog of supported titles and their logos.
type GameService interface {
	Create(ctx context.Context, input CreateGameInput) (*models.Game, error)
	GetByID(ctx context.Context, id string) (*models.Game, error)
	List(ctx context.Context) ([]*models.Game, error)
	Delete(ctx context.Context, id string) error
	UploadLogo(ctx context.Context, gameID, contentType string, r io.Reader) (*models.Game, error)
}

type gameService struct {
	games    repositories.GameRepository
	uploader storage.FileUploader
}

// NewGameService wires the catalog. The uploader may be nil when object
// storage is not configured; logo uploads then fail with
// ErrUploaderNotConfigured.
func NewGameService(games repositories.GameRepository, uploader storage.FileUploader) GameService {
	return &gameService{games: games, uploader: uploader}
}

func (s *gameService) Create(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrGameNameRequired
	}

	g := &models.Game{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.games.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *gameService) GetByID(ctx context.Context, id string) (*models.Game, error) {
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *gameService) List(ctx context.Context) ([]*models.Game, error) {
	return s.games.List(ctx)
}

func (s *gameService) Delete(ctx context.Context, id string) error {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *g.LogoKey); err != nil {
			return fmt.Errorf("failed to delete game logo: %w", err)
		}
	}
	return s.games.Delete(ctx, id)
}

func (s *gameService) UploadLogo(ctx context.Context, gameID, contentType string, r io.Reader) (*models.Game, error) {
	if s.uploader == nil {
		return nil, ErrUploaderNotConfigured
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: logo must be an image, got %q", ErrValidationFailed, contentType)
	}

	g, err := s.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("games/%s/logo", g.ID)
	result, err := s.uploader.Upload(ctx, key, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("failed to upload game logo: %w", err)
	}

	location := result.Location
	g.LogoKey = &result.Key
	g.LogoURL = &location
	if err := s.games.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
