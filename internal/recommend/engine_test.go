// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package recommend

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/ladyCringe/filmorate/internal/logging"
	"github.com/ladyCringe/filmorate/internal/models"
)

type fakeProvider struct {
	userIDs []int
	likes   map[int][]int
	films   map[int]*models.Film
	likeErr error
}

func (f *fakeProvider) GetAllUserIDs(_ context.Context) ([]int, error) {
	return f.userIDs, nil
}

func (f *fakeProvider) GetLikedFilmIDs(_ context.Context, userID int) (map[int]struct{}, error) {
	if f.likeErr != nil {
		return nil, f.likeErr
	}
	set := make(map[int]struct{})
	for _, id := range f.likes[userID] {
		set[id] = struct{}{}
	}
	return set, nil
}

func (f *fakeProvider) GetFilmByID(_ context.Context, filmID int) (*models.Film, error) {
	film, ok := f.films[filmID]
	if !ok {
		return nil, nil
	}
	return film, nil
}

func filmFixtures(ids ...int) map[int]*models.Film {
	films := make(map[int]*models.Film, len(ids))
	for _, id := range ids {
		films[id] = &models.Film{ID: id, Name: "Film"}
	}
	return films
}

func filmIDs(films []*models.Film) []int {
	ids := make([]int, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	return ids
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		userID   int
		want     []int
	}{
		{
			name: "neighbor surplus recommended",
			provider: &fakeProvider{
				userIDs: []int{1, 2},
				likes: map[int][]int{
					1: {10},
					2: {10, 11, 12},
				},
				films: filmFixtures(10, 11, 12),
			},
			userID: 1,
			want:   []int{11, 12},
		},
		{
			name: "no likes yields empty",
			provider: &fakeProvider{
				userIDs: []int{1, 2},
				likes:   map[int][]int{2: {10}},
				films:   filmFixtures(10),
			},
			userID: 1,
			want:   []int{},
		},
		{
			name: "zero overlap yields empty",
			provider: &fakeProvider{
				userIDs: []int{1, 2},
				likes: map[int][]int{
					1: {10},
					2: {20, 21},
				},
				films: filmFixtures(10, 20, 21),
			},
			userID: 1,
			want:   []int{},
		},
		{
			name: "identical tastes yield empty",
			provider: &fakeProvider{
				userIDs: []int{1, 2},
				likes: map[int][]int{
					1: {10, 11},
					2: {10, 11},
				},
				films: filmFixtures(10, 11),
			},
			userID: 1,
			want:   []int{},
		},
		{
			name: "highest overlap neighbor wins",
			provider: &fakeProvider{
				userIDs: []int{1, 2, 3},
				likes: map[int][]int{
					1: {10, 11},
					2: {10, 20},
					3: {10, 11, 30},
				},
				films: filmFixtures(10, 11, 20, 30),
			},
			userID: 1,
			want:   []int{30},
		},
		{
			name: "tie resolves to first enumerated user",
			provider: &fakeProvider{
				userIDs: []int{1, 2, 3},
				likes: map[int][]int{
					1: {10},
					2: {10, 20},
					3: {10, 30},
				},
				films: filmFixtures(10, 20, 30),
			},
			userID: 1,
			want:   []int{20},
		},
		{
			name: "unresolvable films skipped",
			provider: &fakeProvider{
				userIDs: []int{1, 2},
				likes: map[int][]int{
					1: {10},
					2: {10, 11, 12},
				},
				films: filmFixtures(10, 12),
			},
			userID: 1,
			want:   []int{12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(tt.provider, logging.NewTestLogger(io.Discard))
			films, err := engine.Recommend(context.Background(), tt.userID)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			got := filmIDs(films)
			if len(got) != len(tt.want) {
				t.Fatalf("Recommend() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Recommend()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRecommendPropagatesProviderError(t *testing.T) {
	wantErr := errors.New("storage down")
	provider := &fakeProvider{
		userIDs: []int{1, 2},
		likeErr: wantErr,
	}
	engine := NewEngine(provider, logging.NewTestLogger(io.Discard))
	if _, err := engine.Recommend(context.Background(), 1); !errors.Is(err, wantErr) {
		t.Errorf("Recommend() error = %v, want %v", err, wantErr)
	}
}

func TestOverlap(t *testing.T) {
	set := func(ids ...int) map[int]struct{} {
		s := make(map[int]struct{})
		for _, id := range ids {
			s[id] = struct{}{}
		}
		return s
	}
	tests := []struct {
		name string
		a, b map[int]struct{}
		want int
	}{
		{"disjoint", set(1, 2), set(3, 4), 0},
		{"partial", set(1, 2, 3), set(2, 3, 4), 2},
		{"identical", set(1, 2), set(1, 2), 2},
		{"empty", set(), set(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlap(tt.a, tt.b); got != tt.want {
				t.Errorf("overlap() = %d, want %d", got, tt.want)
			}
			if got := overlap(tt.b, tt.a); got != tt.want {
				t.Errorf("overlap() reversed = %d, want %d", got, tt.want)
			}
		})
	}
}
