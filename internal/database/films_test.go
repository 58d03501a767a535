// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"testing"

	"github.com/ladyCringe/filmorate/internal/config"
	"github.com/ladyCringe/filmorate/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{Path: ""})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

func createTestUser(t *testing.T, db *DB, login string) *models.User {
	t.Helper()
	user, err := db.CreateUser(context.Background(), &models.User{
		Email: login + "@example.com",
		Login: login,
		Name:  login,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", login, err)
	}
	return user
}

func createTestFilm(t *testing.T, db *DB, name string) *models.Film {
	t.Helper()
	film, err := db.CreateFilm(context.Background(), &models.Film{
		Name:        name,
		Description: "test",
		ReleaseDate: models.NewDate(2000, 1, 1),
		Duration:    90,
	})
	if err != nil {
		t.Fatalf("CreateFilm(%s): %v", name, err)
	}
	return film
}

func addTestLike(t *testing.T, db *DB, filmID, userID int) {
	t.Helper()
	if err := db.AddLike(context.Background(), filmID, userID); err != nil {
		t.Fatalf("AddLike(%d, %d): %v", filmID, userID, err)
	}
}

func TestGetCommonFilms(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	quiet := createTestFilm(t, db, "Quiet")
	hit := createTestFilm(t, db, "Hit")
	solo := createTestFilm(t, db, "Solo")

	// Both pair films, but hit is globally more popular via carol.
	addTestLike(t, db, quiet.ID, alice.ID)
	addTestLike(t, db, quiet.ID, bob.ID)
	addTestLike(t, db, hit.ID, alice.ID)
	addTestLike(t, db, hit.ID, bob.ID)
	addTestLike(t, db, hit.ID, carol.ID)
	addTestLike(t, db, solo.ID, alice.ID)

	films, err := db.GetCommonFilms(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetCommonFilms: %v", err)
	}
	if len(films) != 2 {
		t.Fatalf("got %d common films, want 2", len(films))
	}
	if films[0].ID != hit.ID || films[1].ID != quiet.ID {
		t.Errorf("common films = [%d %d], want most liked film %d first then %d",
			films[0].ID, films[1].ID, hit.ID, quiet.ID)
	}
	if got := len(films[0].Likes); got != 3 {
		t.Errorf("top film carries %d likes, want all 3, not just the pair's", got)
	}

	films, err = db.GetCommonFilms(ctx, alice.ID, carol.ID)
	if err != nil {
		t.Fatalf("GetCommonFilms: %v", err)
	}
	if len(films) != 1 || films[0].ID != hit.ID {
		t.Errorf("alice/carol common films = %+v, want only the hit", films)
	}
}

func TestGetCommonFilmsNoOverlap(t *testing.T) {
	db := openTestDB(t)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	solo := createTestFilm(t, db, "Solo")
	addTestLike(t, db, solo.ID, alice.ID)

	films, err := db.GetCommonFilms(context.Background(), alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetCommonFilms: %v", err)
	}
	if len(films) != 0 {
		t.Errorf("common films = %+v, want none", films)
	}
}
