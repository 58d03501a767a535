// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSearchTarget(t *testing.T) {
	tests := []struct {
		by      string
		want    SearchTarget
		wantErr bool
	}{
		{"title", SearchByTitle, false},
		{"director", SearchByDirector, false},
		{"title,director", SearchByTitleOrDirector, false},
		{"director,title", SearchByTitleOrDirector, false},
		{"Title, Director", SearchByTitleOrDirector, false},
		{"", 0, true},
		{"actor", 0, true},
		{"title,actor", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.by, func(t *testing.T) {
			got, err := ParseSearchTarget(tt.by)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSearchTarget) {
					t.Errorf("ParseSearchTarget(%q) error = %v, want ErrInvalidSearchTarget", tt.by, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSearchTarget(%q) error = %v", tt.by, err)
			}
			if got != tt.want {
				t.Errorf("ParseSearchTarget(%q) = %v, want %v", tt.by, got, tt.want)
			}
		})
	}
}

func TestPlanFilmSearch(t *testing.T) {
	tests := []struct {
		name     string
		target   SearchTarget
		wantArgs int
		contains []string
		absent   []string
	}{
		{
			name:     "title",
			target:   SearchByTitle,
			wantArgs: 1,
			contains: []string{"f.name ILIKE"},
			absent:   []string{"d.name ILIKE", "UNION"},
		},
		{
			name:     "director",
			target:   SearchByDirector,
			wantArgs: 1,
			contains: []string{"d.name ILIKE"},
			absent:   []string{"f.name ILIKE", "UNION"},
		},
		{
			name:     "title or director unions both matchers",
			target:   SearchByTitleOrDirector,
			wantArgs: 2,
			contains: []string{"f.name ILIKE", "d.name ILIKE", "UNION"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := PlanFilmSearch("heat", tt.target)
			if err != nil {
				t.Fatalf("PlanFilmSearch() error = %v", err)
			}
			if len(desc.Args) != tt.wantArgs {
				t.Errorf("got %d args, want %d", len(desc.Args), tt.wantArgs)
			}
			for _, arg := range desc.Args {
				if arg != "heat" {
					t.Errorf("arg = %v, want query text bound as parameter", arg)
				}
			}
			if !strings.Contains(desc.SQL, "ORDER BY matched.like_count DESC") {
				t.Errorf("SQL missing like-count ordering:\n%s", desc.SQL)
			}
			for _, s := range tt.contains {
				if !strings.Contains(desc.SQL, s) {
					t.Errorf("SQL missing %q:\n%s", s, desc.SQL)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(desc.SQL, s) {
					t.Errorf("SQL should not contain %q:\n%s", s, desc.SQL)
				}
			}
		})
	}

	if _, err := PlanFilmSearch("heat", SearchTarget(99)); !errors.Is(err, ErrInvalidSearchTarget) {
		t.Errorf("PlanFilmSearch(invalid target) error = %v, want ErrInvalidSearchTarget", err)
	}
}
