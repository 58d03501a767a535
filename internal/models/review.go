// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package models

// Review is a user review of a film. Useful is the net helpfulness score:
// each like adds one, each dislike subtracts one.
type Review struct {
	ReviewID   int    `json:"reviewId"`
	Content    string `json:"content" validate:"required"`
	IsPositive *bool  `json:"isPositive" validate:"required"`
	UserID     int    `json:"userId" validate:"required"`
	FilmID     int    `json:"filmId" validate:"required"`
	Useful     int    `json:"useful"`
}
