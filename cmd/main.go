package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arena-gg/arena-server/brackets"
	"github.com/arena-gg/arena-server/config"
	"github.com/arena-gg/arena-server/db"
	"github.com/arena-gg/arena-server/handlers"
	"github.com/arena-gg/arena-server/repositories"
	api "github.com/arena-gg/arena-server/routes"
	"github.com/arena-gg/arena-server/services"
	"github.com/arena-gg/arena-server/storage"
	"github.com/arena-gg/arena-server/store"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver))

	documents, cleanup, err := openDocumentStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open document store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()
	logger.Info("document store ready", slog.String("driver", cfg.StorageDriver))

	// Object storage is optional. Without it logo uploads are rejected but
	// everything else works.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("Cloudflare R2 not configured, logo uploads disabled")
	}

	tournamentRepo := repositories.NewTournamentRepository(documents)
	playerRepo := repositories.NewPlayerRepository(documents)
	gameRepo := repositories.NewGameRepository(documents)

	locks := services.NewTournamentLocks()
	playerService := services.NewPlayerService(playerRepo)
	matchService := services.NewMatchService(tournamentRepo, playerService, locks, logger)
	tournamentService := services.NewTournamentService(
		tournamentRepo,
		playerRepo,
		playerService,
		brackets.NewBuilder(),
		locks,
		logger,
	)
	gameService := services.NewGameService(gameRepo, uploader)
	logger.Info("services initialized")

	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(matchService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	gameHandler := handlers.NewGameHandler(gameService)

	router := chi.NewRouter()
	api.SetupRoutes(router, tournamentHandler, matchHandler, playerHandler, gameHandler)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// openDocumentStore builds the document store selected by the configuration
// and returns a cleanup function closing any underlying connection.
func openDocumentStore(cfg *config.Config, logger *slog.Logger) (store.DocumentStore, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.DriverFile:
		st, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, noop, err
		}
		return st, noop, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		st, err := store.NewRedisStore(client)
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Error("failed to close redis connection", slog.Any("error", err))
			}
		}
		return st, cleanup, nil

	case config.DriverPostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, noop, err
		}
		st, err := store.NewPostgresStore(dbConn)
		if err != nil {
			_ = dbConn.Close()
			return nil, noop, err
		}
		cleanup := func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			}
		}
		return st, cleanup, nil
	}

	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
