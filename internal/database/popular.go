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

// PopularFilter narrows the popular-films listing. Nil fields mean
// "no constraint": an absent Limit returns the full ranking rather
// than applying any default cutoff.
type PopularFilter struct {
	Limit   *int
	GenreID *int
	Year    *int
}

// PlanPopularFilms builds the popularity ranking query. Films are ranked
// in an inner subquery by distinct like count so the LIMIT applies to
// films, not to fan-out rows; the outer query then rehydrates the
// surviving films through the full join shape. Filters compose
// conjunctively and only appear when set.
func PlanPopularFilms(filter PopularFilter) query.Description {
	where := query.NewWhereBuilder()
	genreJoin := ""
	if filter.GenreID != nil {
		where.AddGenre(*filter.GenreID)
		genreJoin = "\n\t\t\tJOIN film_genres fg ON fg.film_id = f.id"
	}
	if filter.Year != nil {
		where.AddReleaseYear(*filter.Year)
	}
	clause, args := where.Build()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(filmJoinColumns)
	sb.WriteString("\n\tFROM films f\n\tJOIN (\n\t\tSELECT f.id AS id, COUNT(DISTINCT l.user_id) AS like_count\n\t\tFROM films f\n\t\tLEFT JOIN likes l ON l.film_id = f.id")
	sb.WriteString(genreJoin)
	sb.WriteString("\n\t\tWHERE ")
	sb.WriteString(clause)
	sb.WriteString("\n\t\tGROUP BY f.id\n\t\tORDER BY like_count DESC, f.id")
	if filter.Limit != nil {
		sb.WriteString("\n\t\tLIMIT ?")
		args = append(args, *filter.Limit)
	}
	sb.WriteString("\n\t) top ON top.id = f.id\n\t")
	sb.WriteString(filmJoinTables)
	sb.WriteString("\n\tORDER BY top.like_count DESC, f.id")

	return query.Description{SQL: sb.String(), Args: args}
}

// GetPopularFilms returns films ranked by distinct like count,
// optionally filtered by genre and release year.
func (db *DB) GetPopularFilms(ctx context.Context, filter PopularFilter) ([]*models.Film, error) {
	if filter.Limit != nil && *filter.Limit <= 0 {
		return nil, fmt.Errorf("popular films limit must be positive, got %d", *filter.Limit)
	}
	return db.queryFilms(ctx, "popular_films", PlanPopularFilms(filter))
}
