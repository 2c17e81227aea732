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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/quiniela26/prediction-system/config"
	"github.com/quiniela26/prediction-system/db"
	"github.com/quiniela26/prediction-system/handlers"
	"github.com/quiniela26/prediction-system/live"
	"github.com/quiniela26/prediction-system/repositories"
	api "github.com/quiniela26/prediction-system/routes"
	"github.com/quiniela26/prediction-system/services"
	"github.com/quiniela26/prediction-system/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Object storage is optional; without it avatar and flag uploads are
	// disabled but everything else works.
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
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized")
	} else {
		logger.Warn("R2 not configured, file uploads disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live event hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	groupStandingRepo := repositories.NewPostgresGroupStandingRepository(dbConn)
	tournamentResultRepo := repositories.NewPostgresTournamentResultRepository(dbConn)
	groupPredRepo := repositories.NewPostgresGroupPredictionRepository(dbConn)
	matchPredRepo := repositories.NewPostgresMatchPredictionRepository(dbConn)
	knockoutPredRepo := repositories.NewPostgresKnockoutPredictionRepository(dbConn)
	tournamentPredRepo := repositories.NewPostgresTournamentPredictionRepository(dbConn)
	leaderboardRepo := repositories.NewPostgresLeaderboardRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, uploader)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader)
	aggregateService := services.NewAggregateService(
		userRepo, groupPredRepo, matchPredRepo, knockoutPredRepo, tournamentPredRepo, logger)
	scoringService := services.NewScoringService(
		matchRepo, groupStandingRepo, tournamentResultRepo,
		groupPredRepo, matchPredRepo, knockoutPredRepo, tournamentPredRepo,
		aggregateService, logger)
	predictionService := services.NewPredictionService(
		matchRepo, teamRepo, groupStandingRepo, tournamentResultRepo,
		groupPredRepo, matchPredRepo, knockoutPredRepo, tournamentPredRepo,
		aggregateService)
	matchService := services.NewMatchService(
		matchRepo, teamRepo, groupStandingRepo, tournamentResultRepo,
		scoringService, hub, logger)
	leaderboardService := services.NewLeaderboardService(leaderboardRepo, userRepo)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	matchHandler := handlers.NewMatchHandler(matchService)
	teamHandler := handlers.NewTeamHandler(teamService)
	adminHandler := handlers.NewAdminHandler(teamService, matchService, scoringService, aggregateService)
	webSocketHandler := handlers.NewWebSocketHandler(hub)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		cfg.AllowedOrigins,
		authHandler,
		userHandler,
		predictionHandler,
		leaderboardHandler,
		matchHandler,
		teamHandler,
		adminHandler,
		webSocketHandler,
	)
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
}
