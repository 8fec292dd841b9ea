package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/arena-gg/arena-server/brackets"
	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/repositories"
	"github.com/arena-gg/arena-server/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GameID      string `json:"game_id"`
}

type RegisterParticipantInput struct {
	Wallet      string `json:"wallet"`
	DisplayName string `json:"display_name"`
}

// TournamentExport is the read-only snapshot returned by Export: the full
// document plus the registry profiles of everyone registered.
type TournamentExport struct {
	Tournament *models.Tournament      `json:"tournament"`
	Profiles   []*models.PlayerProfile `json:"profiles,omitempty"`
}

// TournamentService drives the lifecycle: registration, start (bracket
// generation), administrative cancel/reset and terminal completion.
type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Register(ctx context.Context, tournamentID string, input RegisterParticipantInput) (*models.Tournament, error)
	Unregister(ctx context.Context, tournamentID, wallet string) (*models.Tournament, error)
	Start(ctx context.Context, tournamentID string) (*models.Tournament, error)
	Cancel(ctx context.Context, tournamentID string) error
	ResetRegistration(ctx context.Context, tournamentID string) (*models.Tournament, error)
	ForceComplete(ctx context.Context, tournamentID, winnerID string) (*models.Tournament, error)
	Export(ctx context.Context, tournamentID string) (*TournamentExport, error)
}

type tournamentService struct {
	tournaments repositories.TournamentRepository
	players     repositories.PlayerRepository
	playerSvc   PlayerService
	builder     *brackets.Builder
	locks       *TournamentLocks
	logger      *slog.Logger
}

func NewTournamentService(
	tournaments repositories.TournamentRepository,
	players repositories.PlayerRepository,
	playerSvc PlayerService,
	builder *brackets.Builder,
	locks *TournamentLocks,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournaments: tournaments,
		players:     players,
		playerSvc:   playerSvc,
		builder:     builder,
		locks:       locks,
		logger:      logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTournamentNameRequired
	}

	t := &models.Tournament{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		GameID:       input.GameID,
		Status:       models.TournamentStatusRegistration,
		Participants: []models.Participant{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	return loadTournament(ctx, s.tournaments, id)
}

func (s *tournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	return s.tournaments.List(ctx)
}

func (s *tournamentService) Register(ctx context.Context, tournamentID string, input RegisterParticipantInput) (*models.Tournament, error) {
	if models.NormalizeWallet(input.Wallet) == "" {
		return nil, ErrWalletRequired
	}

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TournamentStatusRegistration {
		return nil, ErrRegistrationClosed
	}
	if t.ParticipantByWallet(input.Wallet) != nil {
		return nil, ErrAlreadyRegistered
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if profile, err := s.playerSvc.Lookup(ctx, input.Wallet); err == nil {
		if displayName == "" && profile.DisplayName != "" {
			displayName = profile.DisplayName
		}
	} else if !errors.Is(err, ErrPlayerNotFound) {
		return nil, err
	}
	if displayName == "" {
		displayName = input.Wallet
	}

	t.Participants = append(t.Participants, models.Participant{
		ID:          uuid.New().String(),
		Wallet:      input.Wallet,
		DisplayName: displayName,
	})

	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) Unregister(ctx context.Context, tournamentID, wallet string) (*models.Tournament, error) {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TournamentStatusRegistration {
		return nil, ErrRegistrationClosed
	}

	norm := models.NormalizeWallet(wallet)
	idx := -1
	for i := range t.Participants {
		if models.NormalizeWallet(t.Participants[i].Wallet) == norm {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrParticipantNotFound
	}
	t.Participants = append(t.Participants[:idx], t.Participants[idx+1:]...)

	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Start closes registration and generates the bracket.
func (s *tournamentService) Start(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	switch t.Status {
	case models.TournamentStatusStarted:
		return nil, ErrTournamentAlreadyStarted
	case models.TournamentStatusFinished:
		return nil, ErrTournamentFinished
	}
	if len(t.Participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	bracket, err := s.builder.Build(t.Participants)
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughParticipants) {
			return nil, ErrNotEnoughParticipants
		}
		return nil, err
	}

	now := time.Now().UTC()
	t.Bracket = bracket
	t.Status = models.TournamentStatusStarted
	t.StartedAt = &now

	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("tournament started",
		slog.String("tournament_id", t.ID),
		slog.Int("participants", len(t.Participants)),
		slog.Int("bracket_size", bracket.BracketSize))
	return t, nil
}

// Cancel deletes a tournament outright. Finished tournaments are history and
// cannot be cancelled.
func (s *tournamentService) Cancel(ctx context.Context, tournamentID string) error {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return err
	}
	if t.Status == models.TournamentStatusFinished {
		return ErrTournamentFinished
	}
	return s.tournaments.Delete(ctx, tournamentID)
}

// ResetRegistration clears the participant list while registration is still
// open.
func (s *tournamentService) ResetRegistration(ctx context.Context, tournamentID string) (*models.Tournament, error) {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TournamentStatusRegistration {
		return nil, ErrRegistrationClosed
	}

	t.Participants = []models.Participant{}
	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ForceComplete is the administrative bypass for abandoned tournaments: the
// named participant is declared winner without requiring bracket completion.
func (s *tournamentService) ForceComplete(ctx context.Context, tournamentID, winnerID string) (*models.Tournament, error) {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status == models.TournamentStatusFinished {
		return nil, ErrTournamentFinished
	}

	winner := t.ParticipantByID(winnerID)
	if winner == nil {
		return nil, ErrWinnerNotRegistered
	}

	finishTournament(t, *winner)
	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}

	if err := s.playerSvc.RecordWin(ctx, winner.Wallet, t.GameID); err != nil {
		s.logger.Error("failed to record forced tournament win",
			slog.String("tournament_id", t.ID),
			slog.String("wallet", winner.Wallet),
			slog.Any("error", err))
	}
	return t, nil
}

// Export returns a read-only snapshot of the tournament document together
// with the registry profiles of its participants, loaded concurrently.
func (s *tournamentService) Export(ctx context.Context, tournamentID string) (*TournamentExport, error) {
	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}

	profiles := make([]*models.PlayerProfile, len(t.Participants))
	g, gCtx := errgroup.WithContext(ctx)
	for i := range t.Participants {
		i := i
		g.Go(func() error {
			p, err := s.players.GetByWallet(gCtx, t.Participants[i].Wallet)
			if err != nil {
				// Wallets without a profile are fine; real store failures
				// abort the export.
				if errors.Is(err, store.ErrKeyNotFound) {
					return nil
				}
				return err
			}
			profiles[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*models.PlayerProfile, 0, len(profiles))
	for _, p := range profiles {
		if p != nil {
			out = append(out, p)
		}
	}
	return &TournamentExport{Tournament: t, Profiles: out}, nil
}
