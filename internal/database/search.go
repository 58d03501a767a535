// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/ladyCringe/filmorate/internal/database/query"
	"github.com/ladyCringe/filmorate/internal/models"
)

// SearchTarget selects which fields a film search matches against.
type SearchTarget int

const (
	// SearchByTitle matches the query substring against film titles.
	SearchByTitle SearchTarget = iota
	// SearchByDirector matches against director names.
	SearchByDirector
	// SearchByTitleOrDirector matches either field, deduplicated.
	SearchByTitleOrDirector
)

// ParseSearchTarget interprets the "by" request parameter: a
// comma-separated combination of "title" and "director" in either
// order. Anything else is ErrInvalidSearchTarget.
func ParseSearchTarget(by string) (SearchTarget, error) {
	var title, director bool
	for _, part := range strings.Split(by, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "title":
			title = true
		case "director":
			director = true
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidSearchTarget, part)
		}
	}
	switch {
	case title && director:
		return SearchByTitleOrDirector, nil
	case title:
		return SearchByTitle, nil
	case director:
		return SearchByDirector, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSearchTarget, by)
	}
}

// matchedSubqueries select the ids of films matching the search text.
// Substring matching is case-insensitive; the query text binds as a
// parameter, never interpolated.
const (
	titleMatch    = `SELECT f.id AS id FROM films f WHERE f.name ILIKE '%' || ? || '%'`
	directorMatch = `SELECT fd.film_id AS id FROM film_director fd
			JOIN directors d ON d.id = fd.director_id
			WHERE d.name ILIKE '%' || ? || '%'`
)

// PlanFilmSearch builds the search query for the given target. Matching
// film ids are collected first (the combined target unions both matchers,
// which deduplicates), ranked by distinct like count over the matched set,
// then rehydrated through the full join shape.
func PlanFilmSearch(text string, target SearchTarget) (query.Description, error) {
	var matched string
	var args []interface{}
	switch target {
	case SearchByTitle:
		matched = titleMatch
		args = []interface{}{text}
	case SearchByDirector:
		matched = directorMatch
		args = []interface{}{text}
	case SearchByTitleOrDirector:
		matched = titleMatch + "\n\t\t\tUNION\n\t\t\t" + directorMatch
		args = []interface{}{text, text}
	default:
		return query.Description{}, fmt.Errorf("%w: %d", ErrInvalidSearchTarget, target)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(filmJoinColumns)
	sb.WriteString("\n\tFROM films f\n\tJOIN (\n\t\tSELECT m.id AS id, COUNT(DISTINCT l.user_id) AS like_count\n\t\tFROM (\n\t\t\t")
	sb.WriteString(matched)
	sb.WriteString("\n\t\t) m\n\t\tLEFT JOIN likes l ON l.film_id = m.id\n\t\tGROUP BY m.id\n\t) matched ON matched.id = f.id\n\t")
	sb.WriteString(filmJoinTables)
	sb.WriteString("\n\tORDER BY matched.like_count DESC, f.id")

	return query.Description{SQL: sb.String(), Args: args}, nil
}

// SearchFilms returns films whose title or director name contains the
// query text, per the target, ranked by like count descending. An empty
// match is an empty slice, not an error.
func (db *DB) SearchFilms(ctx context.Context, text string, target SearchTarget) ([]*models.Film, error) {
	desc, err := PlanFilmSearch(text, target)
	if err != nil {
		return nil, err
	}
	return db.queryFilms(ctx, "search_films", desc)
}
