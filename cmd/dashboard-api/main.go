package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/edvin/alloy/internal/api"
	"github.com/edvin/alloy/internal/chargebee"
	"github.com/edvin/alloy/internal/config"
	"github.com/edvin/alloy/internal/consumption"
	"github.com/edvin/alloy/internal/core"
	"github.com/edvin/alloy/internal/logging"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger("dashboard-api", cfg.LogLevel)

	provider := chargebee.NewClient(cfg.ChargebeeBaseURL(), cfg.ChargebeeAPIKey, logger)
	store := consumption.NewFileStore(cfg.ConsumptionFile)
	services := core.NewServices(provider, store, cfg.JWTSecret, cfg.JWTIssuer)

	srv := api.NewServer(logger, services, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting dashboard API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}
