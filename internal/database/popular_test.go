// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestPlanPopularFilms(t *testing.T) {
	tests := []struct {
		name         string
		filter       PopularFilter
		wantArgs     []interface{}
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "no filters no limit",
			filter:       PopularFilter{},
			wantArgs:     []interface{}{},
			wantContains: []string{"1=1", "ORDER BY like_count DESC"},
			// The canonical projection always carries fg.genre_id, so
			// absence checks target the filter predicate.
			wantAbsent: []string{"LIMIT", "fg.genre_id = ?", "EXTRACT"},
		},
		{
			name:         "limit only",
			filter:       PopularFilter{Limit: intPtr(10)},
			wantArgs:     []interface{}{10},
			wantContains: []string{"LIMIT ?"},
			wantAbsent:   []string{"fg.genre_id = ?", "EXTRACT"},
		},
		{
			name:         "genre filter joins film_genres",
			filter:       PopularFilter{GenreID: intPtr(2)},
			wantArgs:     []interface{}{2},
			wantContains: []string{"JOIN film_genres fg", "fg.genre_id = ?"},
			wantAbsent:   []string{"LIMIT"},
		},
		{
			name:         "year filter",
			filter:       PopularFilter{Year: intPtr(1999)},
			wantArgs:     []interface{}{1999},
			wantContains: []string{"EXTRACT(YEAR FROM f.release_date) = ?"},
		},
		{
			name:     "all filters compose in order",
			filter:   PopularFilter{Limit: intPtr(5), GenreID: intPtr(2), Year: intPtr(1999)},
			wantArgs: []interface{}{2, 1999, 5},
			wantContains: []string{
				"fg.genre_id = ? AND EXTRACT(YEAR FROM f.release_date) = ?",
				"LIMIT ?",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := PlanPopularFilms(tt.filter)
			if len(desc.Args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", desc.Args, tt.wantArgs)
			}
			for i := range desc.Args {
				if desc.Args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, desc.Args[i], tt.wantArgs[i])
				}
			}
			for _, s := range tt.wantContains {
				if !strings.Contains(desc.SQL, s) {
					t.Errorf("SQL missing %q:\n%s", s, desc.SQL)
				}
			}
			for _, s := range tt.wantAbsent {
				if strings.Contains(desc.SQL, s) {
					t.Errorf("SQL should not contain %q:\n%s", s, desc.SQL)
				}
			}
		})
	}
}
