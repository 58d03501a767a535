// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"errors"

	"github.com/ladyCringe/filmorate/internal/models"
	"github.com/ladyCringe/filmorate/internal/recommend"
)

// RecommendationDataProvider adapts the catalog store to the
// recommendation engine's data contract.
type RecommendationDataProvider struct {
	db *DB
}

var _ recommend.DataProvider = (*RecommendationDataProvider)(nil)

// NewRecommendationDataProvider wraps the store for the engine.
func NewRecommendationDataProvider(db *DB) *RecommendationDataProvider {
	return &RecommendationDataProvider{db: db}
}

// GetAllUserIDs enumerates users in ascending id order.
func (p *RecommendationDataProvider) GetAllUserIDs(ctx context.Context) ([]int, error) {
	return p.db.GetAllUserIDs(ctx)
}

// GetLikedFilmIDs returns the film ids a user liked.
func (p *RecommendationDataProvider) GetLikedFilmIDs(ctx context.Context, userID int) (map[int]struct{}, error) {
	return p.db.GetLikedFilmIDs(ctx, userID)
}

// GetFilmByID resolves a film, mapping a missing row to (nil, nil) so
// the engine can skip it instead of failing the recommendation.
func (p *RecommendationDataProvider) GetFilmByID(ctx context.Context, filmID int) (*models.Film, error) {
	film, err := p.db.GetFilmByID(ctx, filmID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return film, nil
}
