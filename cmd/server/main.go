package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/handler"
	"github.com/wadjakorntonsri/visit-tracker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/visit-tracker/pkg/config"
	"github.com/wadjakorntonsri/visit-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/visit-tracker/pkg/logging"
)

func main() {
	cfg := config.Load()

	format := cfg.LogFormat
	if cfg.IsLocal() && os.Getenv("LOG_FORMAT") == "" {
		format = "console"
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: format})

	// Initialize Repository
	repo, err := repository.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer repo.Close()

	// Initialize Services
	tracking := services.NewTrackingService(repo)
	analytics := services.NewAnalyticsService(repo)

	// Initialize Router
	mux := handler.NewRouter(cfg, tracking, analytics)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
