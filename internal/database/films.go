// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ladyCringe/filmorate/internal/database/query"
	"github.com/ladyCringe/filmorate/internal/models"
)

// CreateFilm inserts a film with its genre and director links. Dangling
// references (unknown mpa rating, genre or director) fail with
// ErrNotFound before anything is written.
func (db *DB) CreateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.checkFilmReferences(ctx, film); err != nil {
		return nil, err
	}

	id, err := db.nextID(ctx, "films")
	if err != nil {
		return nil, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var mpaID interface{}
	if film.Mpa != nil {
		mpaID = film.Mpa.ID
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO films (id, name, description, release_date, duration, mpa_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, film.Name, film.Description, film.ReleaseDate.Time, film.Duration, mpaID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert film: %w", err)
	}
	if err := insertFilmLinks(ctx, tx, id, film); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit film: %w", err)
	}

	return db.GetFilmByID(ctx, id)
}

// UpdateFilm replaces a film's scalars and rewrites its genre and
// director links.
func (db *DB) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := db.GetFilmByID(ctx, film.ID); err != nil {
		return nil, err
	}
	if err := db.checkFilmReferences(ctx, film); err != nil {
		return nil, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var mpaID interface{}
	if film.Mpa != nil {
		mpaID = film.Mpa.ID
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE films SET name = ?, description = ?, release_date = ?, duration = ?, mpa_id = ?
		 WHERE id = ?`,
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, mpaID, film.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update film: %w", err)
	}
	for _, table := range []string{"film_genres", "film_director"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE film_id = ?", table), film.ID); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertFilmLinks(ctx, tx, film.ID, film); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit film update: %w", err)
	}

	return db.GetFilmByID(ctx, film.ID)
}

func insertFilmLinks(ctx context.Context, tx *sql.Tx, filmID int, film *models.Film) error {
	seen := make(map[int]struct{}, len(film.Genres))
	for _, g := range film.Genres {
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO film_genres (film_id, genre_id) VALUES (?, ?)`, filmID, g.ID); err != nil {
			return fmt.Errorf("failed to link genre %d: %w", g.ID, err)
		}
	}
	seenDir := make(map[int64]struct{}, len(film.Directors))
	for _, d := range film.Directors {
		if _, dup := seenDir[d.ID]; dup {
			continue
		}
		seenDir[d.ID] = struct{}{}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO film_director (film_id, director_id) VALUES (?, ?)`, filmID, d.ID); err != nil {
			return fmt.Errorf("failed to link director %d: %w", d.ID, err)
		}
	}
	return nil
}

func (db *DB) checkFilmReferences(ctx context.Context, film *models.Film) error {
	if film.Mpa != nil {
		if err := db.requireExists(ctx, "mpa_ratings", "mpa rating", film.Mpa.ID); err != nil {
			return err
		}
	}
	for _, g := range film.Genres {
		if err := db.requireExists(ctx, "genres", "genre", g.ID); err != nil {
			return err
		}
	}
	for _, d := range film.Directors {
		if err := db.requireExists(ctx, "directors", "director", d.ID); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) requireExists(ctx context.Context, table, kind string, id interface{}) error {
	var one int
	stmt := fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", table)
	err := db.conn.QueryRowContext(ctx, stmt, id).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s %v: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check %s %v: %w", kind, id, err)
	}
	return nil
}

// DeleteFilm removes a film and everything hanging off it: genre and
// director links, likes, reviews with their votes, and related feed rows
// stay untouched because the feed is an append-only history.
func (db *DB) DeleteFilm(ctx context.Context, filmID int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "films", "film", filmID); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM review_likes WHERE review_id IN (SELECT id FROM reviews WHERE film_id = ?)`, filmID); err != nil {
		return fmt.Errorf("failed to delete review votes: %w", err)
	}
	for _, stmt := range []string{
		`DELETE FROM reviews WHERE film_id = ?`,
		`DELETE FROM likes WHERE film_id = ?`,
		`DELETE FROM film_genres WHERE film_id = ?`,
		`DELETE FROM film_director WHERE film_id = ?`,
		`DELETE FROM films WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, filmID); err != nil {
			return fmt.Errorf("failed to delete film %d: %w", filmID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit film delete: %w", err)
	}
	return nil
}

// GetFilmByID returns one film with all collections populated.
func (db *DB) GetFilmByID(ctx context.Context, filmID int) (*models.Film, error) {
	desc := query.Description{
		SQL: "SELECT " + filmJoinColumns + "\n\tFROM films f\n\t" + filmJoinTables + "\n\tWHERE f.id = ?",
		Args: []interface{}{filmID},
	}
	films, err := db.queryFilms(ctx, "film_by_id", desc)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, fmt.Errorf("film %d: %w", filmID, ErrNotFound)
	}
	return films[0], nil
}

// GetAllFilms returns every film ordered by id.
func (db *DB) GetAllFilms(ctx context.Context) ([]*models.Film, error) {
	desc := query.Description{
		SQL: "SELECT " + filmJoinColumns + "\n\tFROM films f\n\t" + filmJoinTables + "\n\tORDER BY f.id",
	}
	return db.queryFilms(ctx, "all_films", desc)
}

// AddLike records that a user likes a film. Repeating an existing like
// is a no-op.
func (db *DB) AddLike(ctx context.Context, filmID, userID int) error {
	if err := db.requireExists(ctx, "films", "film", filmID); err != nil {
		return err
	}
	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return err
	}
	return db.execTimed(ctx, "add_like",
		`INSERT OR IGNORE INTO likes (film_id, user_id) VALUES (?, ?)`, filmID, userID)
}

// RemoveLike drops a user's like. Removing an absent like is a no-op.
func (db *DB) RemoveLike(ctx context.Context, filmID, userID int) error {
	if err := db.requireExists(ctx, "films", "film", filmID); err != nil {
		return err
	}
	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return err
	}
	return db.execTimed(ctx, "remove_like",
		`DELETE FROM likes WHERE film_id = ? AND user_id = ?`, filmID, userID)
}

// GetCommonFilms returns films both users liked, most liked first.
func (db *DB) GetCommonFilms(ctx context.Context, userID, friendID int) ([]*models.Film, error) {
	where := query.NewWhereBuilder()
	where.AddLikedByUsers([]int{userID, friendID})
	clause, args := where.Build()

	// The inner grouping finds films both users liked; the ranking then
	// counts likes from everyone, not just the pair.
	stmt := "SELECT " + filmJoinColumns + `
	FROM films f
	JOIN (
		SELECT all_likes.film_id AS id, COUNT(DISTINCT all_likes.user_id) AS like_count
		FROM likes all_likes
		WHERE all_likes.film_id IN (
			SELECT l.film_id FROM likes l
			WHERE ` + clause + `
			GROUP BY l.film_id
			HAVING COUNT(DISTINCT l.user_id) = 2
		)
		GROUP BY all_likes.film_id
	) common ON common.id = f.id
	` + filmJoinTables + `
	ORDER BY common.like_count DESC, f.id`

	return db.queryFilms(ctx, "common_films", query.Description{SQL: stmt, Args: args})
}

// DirectorSort orders a director's filmography listing.
type DirectorSort string

const (
	SortByYear  DirectorSort = "year"
	SortByLikes DirectorSort = "likes"
)

// GetFilmsByDirector lists a director's films sorted by release year or
// by like count. An unknown director is ErrNotFound.
func (db *DB) GetFilmsByDirector(ctx context.Context, directorID int64, sort DirectorSort) ([]*models.Film, error) {
	if err := db.requireExists(ctx, "directors", "director", directorID); err != nil {
		return nil, err
	}

	var order string
	switch sort {
	case SortByYear:
		order = "ORDER BY f.release_date, f.id"
	case SortByLikes:
		order = "ORDER BY ranked.like_count DESC, f.id"
	default:
		return nil, fmt.Errorf("unknown director sort %q", sort)
	}

	stmt := "SELECT " + filmJoinColumns + `
	FROM films f
	JOIN (
		SELECT fd.film_id AS id, COUNT(DISTINCT l.user_id) AS like_count
		FROM film_director fd
		LEFT JOIN likes l ON l.film_id = fd.film_id
		WHERE fd.director_id = ?
		GROUP BY fd.film_id
	) ranked ON ranked.id = f.id
	` + filmJoinTables + "\n\t" + order

	return db.queryFilms(ctx, "films_by_director",
		query.Description{SQL: stmt, Args: []interface{}{directorID}})
}
