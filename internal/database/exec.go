// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ladyCringe/filmorate/internal/database/query"
	"github.com/ladyCringe/filmorate/internal/metrics"
	"github.com/ladyCringe/filmorate/internal/models"
)

// queryFilms runs a planned film listing query and folds the fan-out
// rows into entities. Every film listing path funnels through here so
// timing and error metrics cover all of them.
func (db *DB) queryFilms(ctx context.Context, name string, desc query.Description) ([]*models.Film, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, desc.SQL, desc.Args...)
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(name).Inc()
		return nil, fmt.Errorf("%s query failed: %w", name, err)
	}
	defer closeWithLog(rows, "rows")

	films, err := scanFilmRows(rows)
	metrics.DBQueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(name).Inc()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return films, nil
}

// execTimed runs a write statement with query metrics.
func (db *DB) execTimed(ctx context.Context, name, stmt string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, stmt, args...)
	metrics.DBQueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBQueryErrors.WithLabelValues(name).Inc()
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// nextID allocates the next primary key for a table. The embedded store
// has a single writer per table in practice, so MAX+1 is sufficient.
func (db *DB) nextID(ctx context.Context, table string) (int, error) {
	var id int
	stmt := fmt.Sprintf("SELECT COALESCE(MAX(id), 0) + 1 FROM %s", table)
	if err := db.conn.QueryRowContext(ctx, stmt).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to allocate id for %s: %w", table, err)
	}
	return id, nil
}
