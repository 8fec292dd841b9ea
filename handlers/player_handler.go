package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/arena-gg/arena-server/services"
	"github.com/go-chi/chi/v5"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

// GetByWalletHandler handles GET /players/{wallet}
func (h *PlayerHandler) GetByWalletHandler(w http.ResponseWriter, r *http.Request) {
	wallet := chi.URLParam(r, "wallet")

	profile, err := h.playerService.Lookup(r.Context(), wallet)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpsertHandler handles PUT /players/{wallet}
func (h *PlayerHandler) UpsertHandler(w http.ResponseWriter, r *http.Request) {
	wallet := chi.URLParam(r, "wallet")

	var input struct {
		DisplayName string            `json:"display_name"`
		Gamertags   map[string]string `json:"gamertags"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.playerService.UpsertProfile(r.Context(), services.UpsertPlayerInput{
		Wallet:      wallet,
		DisplayName: input.DisplayName,
		Gamertags:   input.Gamertags,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetGamertagHandler handles PUT /players/{wallet}/gamertags/{gameID}
func (h *PlayerHandler) SetGamertagHandler(w http.ResponseWriter, r *http.Request) {
	wallet := chi.URLParam(r, "wallet")
	gameID := chi.URLParam(r, "gameID")

	var input struct {
		Gamertag string `json:"gamertag"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Gamertag == "" {
		badRequestResponse(w, r, errors.New("gamertag is required"))
		return
	}

	profile, err := h.playerService.SetGamertag(r.Context(), wallet, gameID, input.Gamertag)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LeaderboardHandler handles GET /players/leaderboard
func (h *PlayerHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			badRequestResponse(w, r, errors.New("invalid limit query parameter"))
			return
		}
		limit = parsed
	}

	players, err := h.playerService.Leaderboard(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
