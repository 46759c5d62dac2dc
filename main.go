// Package main is the entry point for the money book HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.com/yelinaung/moneybook/internal/config"
	"gitlab.com/yelinaung/moneybook/internal/database"
	"gitlab.com/yelinaung/moneybook/internal/logger"
	"gitlab.com/yelinaung/moneybook/internal/repository"
	"gitlab.com/yelinaung/moneybook/internal/server"
	"gitlab.com/yelinaung/moneybook/internal/telemetry"
)

// sessionSweepInterval controls how often expired sessions are purged.
const sessionSweepInterval = time.Hour

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("moneybook %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)
	if cfg.LogJSON {
		logger.SetJSON()
	}
	logger.InitHashSalt()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.OTLPEndpoint)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to init telemetry")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Log.Warn().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := database.SeedCategories(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to seed categories")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	srv := server.New(cfg, pool)
	sessions := repository.NewSessionRepository(pool)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(gctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				deleted, err := sessions.DeleteExpired(gctx)
				if err != nil {
					logger.Log.Warn().Err(err).Msg("Session sweep failed")
					continue
				}
				if deleted > 0 {
					logger.Log.Info().Int("deleted", deleted).Msg("Expired sessions removed")
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server stopped with error")
	}
	logger.Log.Info().Msg("Shutdown complete")
}
