package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/arena-gg/arena-server/brackets"
	"github.com/arena-gg/arena-server/models"
	"github.com/arena-gg/arena-server/repositories"
)

// AdminResolution is what an admin supplies to settle a match: either an
// explicit winner (legacy path) or a score pair from which the winner is
// derived. The two cases are distinct types rather than optional fields so a
// resolution can never be both or neither.
type AdminResolution interface {
	isAdminResolution()
}

// ResolveByWinner names the winning player directly. A 1-0 walkover score is
// recorded, since a completed match always carries unequal scores.
type ResolveByWinner struct {
	WinnerID string
}

// ResolveByScore carries the final score; the higher score's player wins.
type ResolveByScore struct {
	Score1 int
	Score2 int
}

func (ResolveByWinner) isAdminResolution() {}
func (ResolveByScore) isAdminResolution()  {}

// ConflictEntry is a match awaiting admin resolution, with both disagreeing
// submissions attached.
type ConflictEntry struct {
	RoundIndex int           `json:"round_index"`
	Match      *models.Match `json:"match"`
}

// MatchService reconciles match results: the two-party submission protocol,
// conflict detection, admin overrides and the administrative match reset.
// Every mutation is a lock-load-mutate-save cycle over the whole tournament
// document, with round advancement running before the save.
type MatchService interface {
	SubmitResult(ctx context.Context, tournamentID, matchID, submitterID string, score1, score2 int) (*models.Match, error)
	AdminSetResult(ctx context.Context, tournamentID, matchID string, resolution AdminResolution) (*models.Match, error)
	ListConflicts(ctx context.Context, tournamentID string) ([]ConflictEntry, error)
	ResetMatch(ctx context.Context, tournamentID, matchID string) (*models.Match, error)
}

type matchService struct {
	tournaments repositories.TournamentRepository
	playerSvc   PlayerService
	locks       *TournamentLocks
	logger      *slog.Logger
}

func NewMatchService(
	tournaments repositories.TournamentRepository,
	playerSvc PlayerService,
	locks *TournamentLocks,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tournaments: tournaments,
		playerSvc:   playerSvc,
		locks:       locks,
		logger:      logger,
	}
}

func (s *matchService) SubmitResult(ctx context.Context, tournamentID, matchID, submitterID string, score1, score2 int) (*models.Match, error) {
	if score1 == score2 {
		return nil, ErrScoresEqual
	}

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Bracket == nil {
		return nil, ErrTournamentNotStarted
	}

	m, roundIdx := t.Bracket.FindMatch(matchID)
	if m == nil {
		return nil, ErrMatchNotFound
	}
	if !m.HasPlayer(submitterID) {
		return nil, ErrNotMatchParticipant
	}
	if m.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}
	if m.SubmissionBy(submitterID) != nil {
		return nil, ErrDuplicateSubmission
	}

	m.PendingResults = append(m.PendingResults, models.SubmittedResult{
		SubmittedBy: submitterID,
		Score1:      score1,
		Score2:      score2,
		SubmittedAt: time.Now().UTC(),
	})

	var champion *models.Participant
	if len(m.PendingResults) == 2 {
		first, second := m.PendingResults[0], m.PendingResults[1]
		if first.Score1 == second.Score1 && first.Score2 == second.Score2 {
			// Both parties agree; the match settles without an admin.
			completeMatch(m, first.Score1, first.Score2, models.CompletedByAuto)
			champion = s.advance(t, roundIdx)
		} else {
			m.PendingResults[0].Conflict = true
			m.PendingResults[1].Conflict = true
		}
	}

	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	s.recordChampion(ctx, t, champion)
	return m, nil
}

// AdminSetResult overrides a match outcome in any state, including completed
// matches (corrections). Correcting a match in an earlier round rewrites that
// match only: advancement is guarded to the active round, so later-round
// slots and an already-recorded tournament winner keep the original
// participant. Use ResetMatch on the last round when the downstream result
// must change too.
func (s *matchService) AdminSetResult(ctx context.Context, tournamentID, matchID string, resolution AdminResolution) (*models.Match, error) {
	if resolution == nil {
		return nil, ErrResolutionRequired
	}

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Bracket == nil {
		return nil, ErrTournamentNotStarted
	}

	// The override is authoritative in any state, including conflict and
	// already-completed (to allow corrections).
	m, roundIdx := t.Bracket.FindMatch(matchID)
	if m == nil {
		return nil, ErrMatchNotFound
	}

	var score1, score2 int
	switch res := resolution.(type) {
	case ResolveByScore:
		if res.Score1 == res.Score2 {
			return nil, ErrScoresEqual
		}
		score1, score2 = res.Score1, res.Score2
	case ResolveByWinner:
		switch res.WinnerID {
		case m.Player1.ID:
			score1, score2 = 1, 0
		case m.Player2.ID:
			score1, score2 = 0, 1
		default:
			return nil, ErrWinnerNotInMatch
		}
	default:
		return nil, ErrResolutionRequired
	}

	m.PendingResults = nil
	completeMatch(m, score1, score2, models.CompletedByAdmin)
	champion := s.advance(t, roundIdx)

	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	s.recordChampion(ctx, t, champion)
	return m, nil
}

func (s *matchService) ListConflicts(ctx context.Context, tournamentID string) ([]ConflictEntry, error) {
	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Bracket == nil {
		return []ConflictEntry{}, nil
	}

	conflicts := []ConflictEntry{}
	for ri, round := range t.Bracket.Rounds {
		for _, m := range round {
			if m.InConflict() {
				conflicts = append(conflicts, ConflictEntry{RoundIndex: ri, Match: m})
			}
		}
	}
	return conflicts, nil
}

// ResetMatch reverts a completed match to pending, clearing winner, scores
// and submissions. The reset is refused once a later round exists, because
// that round already consumed this match's winner and could not be unwound
// coherently. Resetting the decided final reverts the tournament from
// finished back to started; win counters already recorded for the reverted
// champion are not unwound.
func (s *matchService) ResetMatch(ctx context.Context, tournamentID, matchID string) (*models.Match, error) {
	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	t, err := loadTournament(ctx, s.tournaments, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Bracket == nil {
		return nil, ErrTournamentNotStarted
	}

	m, roundIdx := t.Bracket.FindMatch(matchID)
	if m == nil {
		return nil, ErrMatchNotFound
	}
	if m.Status != models.MatchStatusCompleted {
		return nil, ErrMatchNotCompleted
	}
	if roundIdx != len(t.Bracket.Rounds)-1 {
		return nil, ErrMatchWinnerConsumed
	}

	m.Status = models.MatchStatusPending
	m.Winner = nil
	m.Score1 = nil
	m.Score2 = nil
	m.PendingResults = nil
	m.CompletedAt = nil
	m.CompletedBy = ""

	if t.Bracket.IsComplete {
		t.Bracket.IsComplete = false
		t.Bracket.Winner = nil
	}
	if t.Status == models.TournamentStatusFinished {
		t.Status = models.TournamentStatusStarted
		t.FinishedAt = nil
		if t.Winner != nil {
			s.logger.Warn("match reset reverted a finished tournament, recorded win counters are not unwound",
				slog.String("tournament_id", t.ID),
				slog.String("previous_winner", t.Winner.Wallet))
		}
		t.Winner = nil
	}

	if err := s.tournaments.Save(ctx, t); err != nil {
		return nil, err
	}
	return m, nil
}

// advance runs the advancement engine for the round that just changed and
// applies tournament-level completion when a champion emerges.
func (s *matchService) advance(t *models.Tournament, roundIdx int) *models.Participant {
	champion, _ := brackets.AdvanceRound(t.Bracket, roundIdx)
	if champion != nil {
		finishTournament(t, *champion)
	}
	return champion
}

// recordChampion reports a win to the registry after the tournament document
// is saved. The two writes key off disjoint documents; a registry failure is
// logged rather than failing the request that decided the bracket.
func (s *matchService) recordChampion(ctx context.Context, t *models.Tournament, champion *models.Participant) {
	if champion == nil {
		return
	}
	if err := s.playerSvc.RecordWin(ctx, champion.Wallet, t.GameID); err != nil {
		s.logger.Error("failed to record tournament win",
			slog.String("tournament_id", t.ID),
			slog.String("wallet", champion.Wallet),
			slog.Any("error", err))
	}
}
