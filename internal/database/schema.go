// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"fmt"
)

// schemaStatements creates the catalog tables. Ordered so that referenced
// tables exist before the tables that point at them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS mpa_ratings (
		id   INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id   INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS directors (
		id   BIGINT PRIMARY KEY,
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS films (
		id           INTEGER PRIMARY KEY,
		name         VARCHAR NOT NULL,
		description  VARCHAR,
		release_date DATE NOT NULL,
		duration     INTEGER NOT NULL,
		mpa_id       INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS film_genres (
		film_id  INTEGER NOT NULL,
		genre_id INTEGER NOT NULL,
		PRIMARY KEY (film_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS film_director (
		film_id     INTEGER NOT NULL,
		director_id BIGINT NOT NULL,
		PRIMARY KEY (film_id, director_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id       INTEGER PRIMARY KEY,
		email    VARCHAR NOT NULL,
		login    VARCHAR NOT NULL,
		name     VARCHAR,
		birthday DATE
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		film_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		PRIMARY KEY (film_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS friendships (
		user_id   INTEGER NOT NULL,
		friend_id INTEGER NOT NULL,
		PRIMARY KEY (user_id, friend_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id          INTEGER PRIMARY KEY,
		content     VARCHAR NOT NULL,
		is_positive BOOLEAN NOT NULL,
		user_id     INTEGER NOT NULL,
		film_id     INTEGER NOT NULL,
		useful      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS review_likes (
		review_id INTEGER NOT NULL,
		user_id   INTEGER NOT NULL,
		is_like   BOOLEAN NOT NULL,
		PRIMARY KEY (review_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS feed_events (
		id         INTEGER PRIMARY KEY,
		ts         BIGINT NOT NULL,
		user_id    INTEGER NOT NULL,
		event_type VARCHAR NOT NULL,
		operation  VARCHAR NOT NULL,
		entity_id  INTEGER NOT NULL
	)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// seedReferenceData inserts the fixed genre and mpa rating catalogs on
// first run. Both tables are enumerations the API exposes read-only.
func (db *DB) seedReferenceData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM mpa_ratings`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check mpa ratings: %w", err)
	}
	if count == 0 {
		ratings := []struct {
			id   int
			name string
		}{
			{1, "G"}, {2, "PG"}, {3, "PG-13"}, {4, "R"}, {5, "NC-17"},
		}
		for _, r := range ratings {
			if _, err := db.conn.ExecContext(ctx,
				`INSERT INTO mpa_ratings (id, name) VALUES (?, ?)`, r.id, r.name); err != nil {
				return fmt.Errorf("failed to seed mpa ratings: %w", err)
			}
		}
	}

	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM genres`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check genres: %w", err)
	}
	if count == 0 {
		genres := []struct {
			id   int
			name string
		}{
			{1, "Comedy"}, {2, "Drama"}, {3, "Cartoon"},
			{4, "Thriller"}, {5, "Documentary"}, {6, "Action"},
		}
		for _, g := range genres {
			if _, err := db.conn.ExecContext(ctx,
				`INSERT INTO genres (id, name) VALUES (?, ?)`, g.id, g.name); err != nil {
				return fmt.Errorf("failed to seed genres: %w", err)
			}
		}
	}
	return nil
}
