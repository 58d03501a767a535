// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package api

import (
	"net/http"

	"github.com/ladyCringe/filmorate/internal/models"
	"github.com/ladyCringe/filmorate/internal/validation"
)

// ListGenres returns the genre catalog.
func (h *Handlers) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.db.GetGenres(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, genres)
}

// GetGenre returns one genre.
func (h *Handlers) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	genre, err := h.db.GetGenreByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, genre)
}

// ListMpaRatings returns the mpa rating catalog.
func (h *Handlers) ListMpaRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.db.GetMpaRatings(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ratings)
}

// GetMpaRating returns one mpa rating.
func (h *Handlers) GetMpaRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	rating, err := h.db.GetMpaByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rating)
}

// ListDirectors returns every director.
func (h *Handlers) ListDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := h.db.GetDirectors(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, directors)
}

// GetDirector returns one director.
func (h *Handlers) GetDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	director, err := h.db.GetDirectorByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, director)
}

// CreateDirector stores a new director.
func (h *Handlers) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var director models.Director
	if !decodeBody(w, r, &director) {
		return
	}
	if err := validation.Struct(&director); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	created, err := h.db.CreateDirector(r.Context(), &director)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// UpdateDirector renames a director.
func (h *Handlers) UpdateDirector(w http.ResponseWriter, r *http.Request) {
	var director models.Director
	if !decodeBody(w, r, &director) {
		return
	}
	if err := validation.Struct(&director); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	updated, err := h.db.UpdateDirector(r.Context(), &director)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteDirector removes a director, leaving their films in place.
func (h *Handlers) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(w, r, "id")
	if !ok {
		return
	}
	if err := h.db.DeleteDirector(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}
