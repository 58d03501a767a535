// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

// Package recommend implements nearest-neighbor film recommendations
// over like overlap. It depends only on the models package; storage is
// injected through DataProvider so the engine stays testable without a
// database.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ladyCringe/filmorate/internal/models"
)

// DataProvider supplies the engine with user and like data.
type DataProvider interface {
	// GetAllUserIDs enumerates every known user. The order must be
	// stable across calls: ties between equally similar neighbors
	// resolve to whichever user this enumeration yields first.
	GetAllUserIDs(ctx context.Context) ([]int, error)

	// GetLikedFilmIDs returns the set of film ids a user liked.
	GetLikedFilmIDs(ctx context.Context, userID int) (map[int]struct{}, error)

	// GetFilmByID resolves one film. A missing film returns (nil, nil)
	// rather than an error so the engine can degrade per item.
	GetFilmByID(ctx context.Context, filmID int) (*models.Film, error)
}

// Engine computes recommendations from a single most-similar neighbor.
type Engine struct {
	provider DataProvider
	logger   zerolog.Logger
}

// NewEngine builds an engine over the given provider.
func NewEngine(provider DataProvider, logger zerolog.Logger) *Engine {
	return &Engine{
		provider: provider,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
}

// Recommend returns films the target user has not liked yet, taken from
// the single user whose liked set overlaps the target's the most. A user
// with no likes, no neighbors, or only zero-overlap neighbors gets an
// empty slice. Films that cannot be resolved are skipped, never failing
// the whole request.
func (e *Engine) Recommend(ctx context.Context, userID int) ([]*models.Film, error) {
	target, err := e.provider.GetLikedFilmIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes for user %d: %w", userID, err)
	}
	if len(target) == 0 {
		return []*models.Film{}, nil
	}

	userIDs, err := e.provider.GetAllUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate users: %w", err)
	}

	bestScore := 0
	var bestLikes map[int]struct{}
	for _, otherID := range userIDs {
		if otherID == userID {
			continue
		}
		likes, err := e.provider.GetLikedFilmIDs(ctx, otherID)
		if err != nil {
			return nil, fmt.Errorf("failed to load likes for user %d: %w", otherID, err)
		}
		score := overlap(target, likes)
		// Strict comparison keeps the first user at any given score,
		// so equal neighbors resolve by enumeration order.
		if score > bestScore {
			bestScore = score
			bestLikes = likes
		}
	}
	if bestScore == 0 {
		return []*models.Film{}, nil
	}

	candidates := make([]int, 0, len(bestLikes))
	for filmID := range bestLikes {
		if _, liked := target[filmID]; liked {
			continue
		}
		candidates = append(candidates, filmID)
	}
	sort.Ints(candidates)

	films := []*models.Film{}
	for _, filmID := range candidates {
		film, err := e.provider.GetFilmByID(ctx, filmID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve film %d: %w", filmID, err)
		}
		if film == nil {
			e.logger.Warn().Int("film_id", filmID).Msg("Skipping unresolvable recommended film")
			continue
		}
		films = append(films, film)
	}
	return films, nil
}

// overlap counts film ids present in both like sets.
func overlap(a, b map[int]struct{}) int {
	// Iterate the smaller set.
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for id := range a {
		if _, ok := b[id]; ok {
			n++
		}
	}
	return n
}
