package services

import "errors"

// Shared errors surfaced by the service layer and mapped to HTTP statuses in
// handlers.
var (
	// Validation errors
	ErrValidationFailed       = errors.New("validation failed")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrWalletRequired         = errors.New("wallet address is required")
	ErrGameNameRequired       = errors.New("game name is required")
	ErrScoresEqual            = errors.New("draws are not allowed, scores must differ")
	ErrResolutionRequired     = errors.New("admin resolution requires a winner id or a score pair")
	ErrWinnerNotInMatch       = errors.New("winner id does not match either match player")
	ErrWinnerNotRegistered    = errors.New("winner is not a registered participant")
	ErrNotEnoughParticipants  = errors.New("at least 2 participants are required to start")

	// Not found
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrPlayerNotFound      = errors.New("player profile not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrParticipantNotFound = errors.New("participant not found in tournament")

	// Conflicts
	ErrAlreadyRegistered   = errors.New("wallet is already registered for this tournament")
	ErrDuplicateSubmission = errors.New("participant has already submitted a result for this match")

	// Lifecycle state errors
	ErrRegistrationClosed       = errors.New("tournament is not open for registration")
	ErrTournamentAlreadyStarted = errors.New("tournament has already started")
	ErrTournamentNotStarted     = errors.New("tournament has not started")
	ErrTournamentFinished       = errors.New("tournament is already finished")
	ErrMatchAlreadyCompleted    = errors.New("match is already completed")
	ErrMatchNotCompleted        = errors.New("match is not completed")
	ErrMatchWinnerConsumed      = errors.New("match winner already advanced to a later round, reset refused")

	// Authorization
	ErrNotMatchParticipant = errors.New("submitter is not a participant of this match")

	// Infrastructure
	ErrUploaderNotConfigured = errors.New("file uploader is not configured")
)
