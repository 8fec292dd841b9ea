package handlers

import (
	"errors"
	"net/http"

	"github.com/arena-gg/arena-server/services"
	"github.com/go-chi/chi/v5"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// SubmitResultHandler handles POST /tournaments/{tournamentID}/matches/{matchID}/results
func (h *MatchHandler) SubmitResultHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	matchID := chi.URLParam(r, "matchID")

	var input struct {
		SubmitterID string `json:"submitter_id"`
		Score1      int    `json:"score1"`
		Score2      int    `json:"score2"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.SubmitterID == "" {
		badRequestResponse(w, r, errors.New("submitter_id is required"))
		return
	}

	match, err := h.matchService.SubmitResult(r.Context(), tournamentID, matchID, input.SubmitterID, input.Score1, input.Score2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdminSetResultHandler handles PUT /tournaments/{tournamentID}/matches/{matchID}/result
//
// The body carries either a winner_id (recorded as a walkover) or an
// explicit score pair, not both.
func (h *MatchHandler) AdminSetResultHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	matchID := chi.URLParam(r, "matchID")

	var input struct {
		WinnerID string `json:"winner_id"`
		Score1   *int   `json:"score1"`
		Score2   *int   `json:"score2"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var resolution services.AdminResolution
	switch {
	case input.WinnerID != "" && (input.Score1 != nil || input.Score2 != nil):
		badRequestResponse(w, r, errors.New("provide either winner_id or a score pair, not both"))
		return
	case input.WinnerID != "":
		resolution = services.ResolveByWinner{WinnerID: input.WinnerID}
	case input.Score1 != nil && input.Score2 != nil:
		resolution = services.ResolveByScore{Score1: *input.Score1, Score2: *input.Score2}
	default:
		badRequestResponse(w, r, errors.New("provide winner_id or both score1 and score2"))
		return
	}

	match, err := h.matchService.AdminSetResult(r.Context(), tournamentID, matchID, resolution)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListConflictsHandler handles GET /tournaments/{tournamentID}/conflicts
func (h *MatchHandler) ListConflictsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")

	conflicts, err := h.matchService.ListConflicts(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"conflicts": conflicts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetMatchHandler handles POST /tournaments/{tournamentID}/matches/{matchID}/reset
func (h *MatchHandler) ResetMatchHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	matchID := chi.URLParam(r, "matchID")

	match, err := h.matchService.ResetMatch(r.Context(), tournamentID, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
