// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/ladyCringe/filmorate/internal/models"
)

func validFilm() models.Film {
	return models.Film{
		Name:        "Heat",
		Description: "Bank heist drama",
		ReleaseDate: models.NewDate(1995, time.December, 15),
		Duration:    170,
	}
}

func validUser() models.User {
	return models.User{
		Email:    "user@example.com",
		Login:    "moviegoer",
		Birthday: models.NewDate(1990, time.June, 1),
	}
}

func TestFilmValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Film)
		wantErr string
	}{
		{"valid", func(*models.Film) {}, ""},
		{"empty name", func(f *models.Film) { f.Name = "" }, "required"},
		{"description too long", func(f *models.Film) { f.Description = strings.Repeat("x", 201) }, "200"},
		{"description at limit", func(f *models.Film) { f.Description = strings.Repeat("x", 200) }, ""},
		{"zero duration", func(f *models.Film) { f.Duration = 0 }, "greater"},
		{"negative duration", func(f *models.Film) { f.Duration = -5 }, "greater"},
		{
			"release before first screening",
			func(f *models.Film) { f.ReleaseDate = models.NewDate(1895, time.December, 27) },
			"1895-12-28",
		},
		{
			"release on first screening day",
			func(f *models.Film) { f.ReleaseDate = models.NewDate(1895, time.December, 28) },
			"",
		},
		{"unset release date", func(f *models.Film) { f.ReleaseDate = models.Date{} }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			film := validFilm()
			tt.mutate(&film)
			err := Struct(&film)
			checkValidation(t, err, tt.wantErr)
		})
	}
}

func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.User)
		wantErr string
	}{
		{"valid", func(*models.User) {}, ""},
		{"bad email", func(u *models.User) { u.Email = "not-an-email" }, "email"},
		{"empty login", func(u *models.User) { u.Login = "" }, "required"},
		{"login with space", func(u *models.User) { u.Login = "movie goer" }, "whitespace"},
		{
			"future birthday",
			func(u *models.User) { u.Birthday = models.Date{Time: time.Now().Add(48 * time.Hour)} },
			"future",
		},
		{"unset birthday", func(u *models.User) { u.Birthday = models.Date{} }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validUser()
			tt.mutate(&user)
			err := Struct(&user)
			checkValidation(t, err, tt.wantErr)
		})
	}
}

func checkValidation(t *testing.T, err error, want string) {
	t.Helper()
	if want == "" {
		if err != nil {
			t.Errorf("Struct() error = %v, want nil", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("Struct() = nil, want error containing %q", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("Struct() error = %q, want it to contain %q", err, want)
	}
}
