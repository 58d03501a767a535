// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package models

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar date serialized as "2006-01-02" (the wire format used
// for release dates and birthdays). The zero value marshals as null.
type Date struct {
	time.Time
}

// DateLayout is the wire format for Date values.
const DateLayout = "2006-01-02"

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. Accepts "2006-01-02" and null.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MpaRating is an MPA age classification (G, PG, PG-13, R, NC-17).
type MpaRating struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Genre is a film genre tag.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Director is a film director reference.
type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty" validate:"required"`
}

// Film is the central catalog entity. Genres, Directors and Likes carry
// set semantics: unique by id, order not part of the contract. The row
// folding in the database package guarantees uniqueness; callers must not
// append duplicates themselves.
type Film struct {
	ID          int    `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"max=200"`
	// ReleaseDate must not precede the first film screening (1895-12-28).
	ReleaseDate Date       `json:"releaseDate" validate:"releasedate"`
	Duration    int        `json:"duration" validate:"gt=0"`
	Mpa         *MpaRating `json:"mpa,omitempty"`
	Genres      []Genre    `json:"genres"`
	Directors   []Director `json:"director"`
	Likes       []int      `json:"likes"`
}

// LikeCount returns the number of distinct users who liked the film.
func (f *Film) LikeCount() int {
	return len(f.Likes)
}

// HasGenre reports whether the film carries the given genre id.
func (f *Film) HasGenre(genreID int) bool {
	for _, g := range f.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}
