// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ladyCringe/filmorate/internal/models"
)

// GetGenres returns the genre catalog ordered by id.
func (db *DB) GetGenres(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("genres query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	genres := []models.Genre{}
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("genre iteration failed: %w", err)
	}
	return genres, nil
}

// GetGenreByID returns one genre. Hits are served from the LRU.
func (db *DB) GetGenreByID(ctx context.Context, id int) (*models.Genre, error) {
	if g, ok := db.genreCache.Get(id); ok {
		return &g, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var g models.Genre
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM genres WHERE id = ?`, id).Scan(&g.ID, &g.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("genre %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("genre query failed: %w", err)
	}
	db.genreCache.Add(id, g)
	return &g, nil
}

// GetMpaRatings returns the mpa rating catalog ordered by id.
func (db *DB) GetMpaRatings(ctx context.Context) ([]models.MpaRating, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM mpa_ratings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("mpa query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	ratings := []models.MpaRating{}
	for rows.Next() {
		var r models.MpaRating
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("failed to scan mpa rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mpa iteration failed: %w", err)
	}
	return ratings, nil
}

// GetMpaByID returns one mpa rating. Hits are served from the LRU.
func (db *DB) GetMpaByID(ctx context.Context, id int) (*models.MpaRating, error) {
	if r, ok := db.mpaCache.Get(id); ok {
		return &r, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var r models.MpaRating
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM mpa_ratings WHERE id = ?`, id).Scan(&r.ID, &r.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mpa rating %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("mpa query failed: %w", err)
	}
	db.mpaCache.Add(id, r)
	return &r, nil
}

// GetDirectors returns all directors ordered by id.
func (db *DB) GetDirectors(ctx context.Context) ([]models.Director, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM directors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("directors query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	directors := []models.Director{}
	for rows.Next() {
		var d models.Director
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("failed to scan director: %w", err)
		}
		directors = append(directors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("director iteration failed: %w", err)
	}
	return directors, nil
}

// GetDirectorByID returns one director. Hits are served from the LRU;
// the writers below keep it coherent.
func (db *DB) GetDirectorByID(ctx context.Context, id int64) (*models.Director, error) {
	if d, ok := db.directorCache.Get(id); ok {
		return &d, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var d models.Director
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM directors WHERE id = ?`, id).Scan(&d.ID, &d.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("director %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("director query failed: %w", err)
	}
	db.directorCache.Add(id, d)
	return &d, nil
}

// CreateDirector inserts a director and returns it with its assigned id.
func (db *DB) CreateDirector(ctx context.Context, director *models.Director) (*models.Director, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := db.nextID(ctx, "directors")
	if err != nil {
		return nil, err
	}
	err = db.execTimed(ctx, "create_director",
		`INSERT INTO directors (id, name) VALUES (?, ?)`, id, director.Name)
	if err != nil {
		return nil, err
	}
	return &models.Director{ID: int64(id), Name: director.Name}, nil
}

// UpdateDirector renames a director.
func (db *DB) UpdateDirector(ctx context.Context, director *models.Director) (*models.Director, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "directors", "director", director.ID); err != nil {
		return nil, err
	}
	err := db.execTimed(ctx, "update_director",
		`UPDATE directors SET name = ? WHERE id = ?`, director.Name, director.ID)
	if err != nil {
		return nil, err
	}
	db.directorCache.Remove(director.ID)
	return db.GetDirectorByID(ctx, director.ID)
}

// DeleteDirector removes a director and its film links. Films keep
// existing without the director.
func (db *DB) DeleteDirector(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "directors", "director", id); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM film_director WHERE director_id = ?`, id); err != nil {
		return fmt.Errorf("failed to unlink director %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM directors WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete director %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit director delete: %w", err)
	}
	db.directorCache.Remove(id)
	return nil
}
