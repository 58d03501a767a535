// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

// Package database provides the DuckDB-backed catalog store: schema
// management, the flat-join film folding pipeline, query planning for
// popular-film and search listings, and CRUD for films, users, directors,
// genres, mpa ratings, reviews and the activity feed.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver registration
	"github.com/rs/zerolog"

	"github.com/ladyCringe/filmorate/internal/cache"
	"github.com/ladyCringe/filmorate/internal/config"
	"github.com/ladyCringe/filmorate/internal/logging"
	"github.com/ladyCringe/filmorate/internal/models"
)

// queryTimeout bounds individual catalog queries. Listing queries fan out
// across several joins but run against an embedded store, so anything
// slower than this indicates a schema or planner problem rather than load.
const queryTimeout = 30 * time.Second

// DB wraps the embedded DuckDB connection and exposes the catalog
// operations. All methods are safe for concurrent use; DuckDB serializes
// writers internally.
type DB struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	logger zerolog.Logger

	// Reference catalogs are small and nearly immutable, so by-id
	// lookups go through an LRU instead of the connection pool.
	genreCache    *cache.LRU[int, models.Genre]
	mpaCache      *cache.LRU[int, models.MpaRating]
	directorCache *cache.LRU[int64, models.Director]
}

// New opens (creating if necessary) the DuckDB database at cfg.Path,
// applies resource pragmas, creates the schema and seeds reference data.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is nil")
	}

	conn, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", cfg.Path, err)
	}

	// DuckDB handles its own internal parallelism; a small pool is enough.
	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(0)

	db := &DB{
		conn:          conn,
		cfg:           cfg,
		logger:        logging.With().Str("component", "database").Logger(),
		genreCache:    cache.NewLRU[int, models.Genre](64, time.Hour),
		mpaCache:      cache.NewLRU[int, models.MpaRating](16, time.Hour),
		directorCache: cache.NewLRU[int64, models.Director](1024, 10*time.Minute),
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if err := db.applyPragmas(ctx); err != nil {
		closeQuietly(conn)
		return nil, err
	}
	if err := db.createSchema(ctx); err != nil {
		closeQuietly(conn)
		return nil, err
	}
	if err := db.seedReferenceData(ctx); err != nil {
		closeQuietly(conn)
		return nil, err
	}

	db.logger.Info().Str("path", cfg.Path).Msg("Database initialized")
	return db, nil
}

func (db *DB) applyPragmas(ctx context.Context) error {
	if db.cfg.MaxMemoryMB > 0 {
		pragma := fmt.Sprintf("SET memory_limit = '%dMB'", db.cfg.MaxMemoryMB)
		if _, err := db.conn.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set memory limit: %w", err)
		}
	}
	if db.cfg.Threads > 0 {
		pragma := fmt.Sprintf("SET threads = %d", db.cfg.Threads)
		if _, err := db.conn.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set thread count: %w", err)
		}
	}
	return nil
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Conn exposes the underlying connection for health checks and tests.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close releases the database handle.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
