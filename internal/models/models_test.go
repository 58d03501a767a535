// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestDate_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		date     Date
		expected string
	}{
		{name: "regular date", date: NewDate(1999, time.March, 31), expected: `"1999-03-31"`},
		{name: "zero value", date: Date{}, expected: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.date)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(b) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, b)
			}
		})
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"1895-12-28"`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if d.Year() != 1895 || d.Month() != time.December || d.Day() != 28 {
		t.Errorf("Unexpected date: %v", d)
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Error("Expected error for malformed date")
	}

	if err := json.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("Unmarshal null failed: %v", err)
	}
	if !d.IsZero() {
		t.Error("Expected zero date after null")
	}
}

func TestFilm_JSONRoundTrip(t *testing.T) {
	film := Film{
		ID:          7,
		Name:        "The Matrix",
		Description: "A hacker discovers reality is a simulation",
		ReleaseDate: NewDate(1999, time.March, 31),
		Duration:    136,
		Mpa:         &MpaRating{ID: 4, Name: "R"},
		Genres:      []Genre{{ID: 2, Name: "Drama"}, {ID: 6, Name: "Action"}},
		Directors:   []Director{{ID: 1, Name: "Lana Wachowski"}},
		Likes:       []int{1, 2, 3},
	}

	b, err := json.Marshal(film)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Film
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded.ID != film.ID || decoded.Name != film.Name {
		t.Errorf("Scalar mismatch: %+v", decoded)
	}
	if !decoded.ReleaseDate.Equal(film.ReleaseDate.Time) {
		t.Errorf("ReleaseDate mismatch: %v", decoded.ReleaseDate)
	}
	if len(decoded.Genres) != 2 || len(decoded.Directors) != 1 || len(decoded.Likes) != 3 {
		t.Errorf("Collection mismatch: %+v", decoded)
	}
}

func TestFilm_HasGenre(t *testing.T) {
	film := Film{Genres: []Genre{{ID: 1}, {ID: 4}}}

	if !film.HasGenre(4) {
		t.Error("Expected genre 4 to be present")
	}
	if film.HasGenre(2) {
		t.Error("Expected genre 2 to be absent")
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := User{Login: "neo"}
	if got := u.DisplayName(); got != "neo" {
		t.Errorf("Expected login fallback, got %q", got)
	}

	u.Name = "Thomas Anderson"
	if got := u.DisplayName(); got != "Thomas Anderson" {
		t.Errorf("Expected name, got %q", got)
	}
}

func TestEventType_Valid(t *testing.T) {
	for _, et := range []EventType{EventLike, EventReview, EventFriend} {
		if !et.Valid() {
			t.Errorf("Expected %q to be valid", et)
		}
	}
	if EventType("WATCH").Valid() {
		t.Error("Expected unknown event type to be invalid")
	}
}

func TestOperation_Valid(t *testing.T) {
	for _, op := range []Operation{OpAdd, OpRemove, OpUpdate} {
		if !op.Valid() {
			t.Errorf("Expected %q to be valid", op)
		}
	}
	if Operation("UPSERT").Valid() {
		t.Error("Expected unknown operation to be invalid")
	}
}
