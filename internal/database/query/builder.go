// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

// Package query provides SQL query building utilities for the database
// package: a typed query description (statement text plus bound
// parameters) and a WHERE-clause builder that keeps all caller-supplied
// values parameterized.
package query

import (
	"fmt"
	"strings"
)

// Description is a fully planned, parameterized query: the statement text
// and the arguments to bind, in placeholder order. Planners produce
// Descriptions; only the executor ever interpolates them into a driver
// call. Caller-controlled values never appear in SQL text.
type Description struct {
	SQL  string
	Args []interface{}
}

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddGenre(genreID)
//	wb.AddReleaseYear(year)
//	whereClause, args := wb.Build()
//	// fg.genre_id = ? AND EXTRACT(YEAR FROM f.release_date) = ?
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates an empty WhereBuilder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw condition fragment with its arguments. Useful for
// conditions not covered by the helper methods.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddGenre adds an equality predicate on the genre-membership relation.
// The caller is responsible for joining film_genres as fg.
func (wb *WhereBuilder) AddGenre(genreID int) *WhereBuilder {
	wb.clauses = append(wb.clauses, "fg.genre_id = ?")
	wb.args = append(wb.args, genreID)
	return wb
}

// AddReleaseYear adds an equality predicate on the year component of the
// film release date.
func (wb *WhereBuilder) AddReleaseYear(year int) *WhereBuilder {
	wb.clauses = append(wb.clauses, "EXTRACT(YEAR FROM f.release_date) = ?")
	wb.args = append(wb.args, year)
	return wb
}

// AddLikedByUsers adds a liking-user filter using an IN clause.
// Generates "l.user_id IN (?, ?, ...)"; an empty slice is skipped.
func (wb *WhereBuilder) AddLikedByUsers(userIDs []int) *WhereBuilder {
	if len(userIDs) == 0 {
		return wb
	}
	placeholders := make([]string, len(userIDs))
	for i, id := range userIDs {
		placeholders[i] = "?"
		wb.args = append(wb.args, id)
	}
	wb.clauses = append(wb.clauses, fmt.Sprintf("l.user_id IN (%s)", strings.Join(placeholders, ", ")))
	return wb
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were
// added, so the result is always safe to concatenate after WHERE.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
