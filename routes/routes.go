package routes

import (
	"github.com/arena-gg/arena-server/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes mounts all API endpoints on the given router.
func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Post("/", tournamentHandler.CreateHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Delete("/", tournamentHandler.DeleteHandler)

			r.Post("/participants", tournamentHandler.RegisterHandler)
			r.Delete("/participants/{wallet}", tournamentHandler.UnregisterHandler)

			r.Post("/start", tournamentHandler.StartHandler)
			r.Post("/reset", tournamentHandler.ResetRegistrationHandler)
			r.Post("/force-complete", tournamentHandler.ForceCompleteHandler)
			r.Get("/export", tournamentHandler.ExportHandler)

			r.Get("/conflicts", matchHandler.ListConflictsHandler)
			r.Route("/matches/{matchID}", func(r chi.Router) {
				r.Post("/results", matchHandler.SubmitResultHandler)
				r.Put("/result", matchHandler.AdminSetResultHandler)
				r.Post("/reset", matchHandler.ResetMatchHandler)
			})
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/leaderboard", playerHandler.LeaderboardHandler)
		r.Get("/{wallet}", playerHandler.GetByWalletHandler)
		r.Put("/{wallet}", playerHandler.UpsertHandler)
		r.Put("/{wallet}/gamertags/{gameID}", playerHandler.SetGamertagHandler)
	})

	router.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.ListHandler)
		r.Post("/", gameHandler.CreateHandler)
		r.Get("/{gameID}", gameHandler.GetByIDHandler)
		r.Delete("/{gameID}", gameHandler.DeleteHandler)
		r.Post("/{gameID}/logo", gameHandler.UploadLogoHandler)
	})
}
