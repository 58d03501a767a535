// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

// Command server runs the film catalog HTTP service: the DuckDB-backed
// store, the recommendation engine, the activity feed consumer and the
// API listener, all under one supervision tree.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ladyCringe/filmorate/internal/api"
	"github.com/ladyCringe/filmorate/internal/config"
	"github.com/ladyCringe/filmorate/internal/database"
	"github.com/ladyCringe/filmorate/internal/eventfeed"
	"github.com/ladyCringe/filmorate/internal/logging"
	"github.com/ladyCringe/filmorate/internal/recommend"
	"github.com/ladyCringe/filmorate/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	engine := recommend.NewEngine(database.NewRecommendationDataProvider(db), logging.Logger())

	feed, err := eventfeed.New(db, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create event feed")
	}

	handlers := api.NewHandlers(db, engine, feed)
	server := api.NewServer(cfg, api.NewRouter(cfg, handlers))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	treeConfig := supervisor.DefaultConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.New(logging.NewSlogLogger(), treeConfig)
	tree.AddFeedService(feed)
	tree.AddAPIService(server)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := <-tree.ServeBackground(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor error")
	}
	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services did not stop within the shutdown timeout")
	}

	logging.Info().Msg("Service stopped")
}
