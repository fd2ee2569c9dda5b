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

	"github.com/Riverafc7/esports-club-platform/config"
	"github.com/Riverafc7/esports-club-platform/db"
	"github.com/Riverafc7/esports-club-platform/handlers"
	"github.com/Riverafc7/esports-club-platform/live"
	"github.com/Riverafc7/esports-club-platform/repositories"
	"github.com/Riverafc7/esports-club-platform/routes"
	"github.com/Riverafc7/esports-club-platform/services"
	"github.com/Riverafc7/esports-club-platform/storage"
)

const (
	dbConnectTimeout  = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	closeSweepPeriod  = time.Hour
	readHeaderTimeout = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	logger.Info("database connection established")

	uploader, err := storage.NewR2Uploader(storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	hub := live.NewHub(logger)
	go hub.Run()

	userRepo := repositories.NewPostgresUserRepository(database)
	teamRepo := repositories.NewPostgresTeamRepository(database)
	tournamentRepo := repositories.NewPostgresTournamentRepository(database)
	matchRepo := repositories.NewPostgresMatchRepository(database)
	statRepo := repositories.NewPostgresStatRepository(database)

	tokenService := services.NewTokenService(cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	emailService := services.NewEmailService(cfg)
	userService := services.NewUserService(userRepo, uploader)
	teamService := services.NewTeamService(teamRepo, userRepo, uploader)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, statRepo, teamService, logger)
	scheduleService := services.NewScheduleService(matchRepo, tournamentRepo, teamRepo, statRepo, hub, logger)

	router := routes.New(routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService, emailService, logger),
		User:       handlers.NewUserHandler(userService),
		Team:       handlers.NewTeamHandler(teamService),
		Tournament: handlers.NewTournamentHandler(tournamentService, scheduleService, teamService),
		Admin:      handlers.NewAdminHandler(scheduleService),
		WebSocket:  handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins, logger),
	}, tokenService, cfg.CORSAllowedOrigins)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background sweep: open tournaments whose date has passed get closed.
	go func() {
		ticker := time.NewTicker(closeSweepPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case <-ticker.C:
				if err := tournamentService.CloseExpired(rootCtx); err != nil {
					logger.Error("tournament close sweep failed", slog.Any("error", err))
				}
			}
		}
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-rootCtx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
