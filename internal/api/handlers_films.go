// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package api

import (
	"net/http"

	"github.com/ladyCringe/filmorate/internal/database"
	"github.com/ladyCringe/filmorate/internal/models"
	"github.com/ladyCringe/filmorate/internal/validation"
)

// ListFilms returns the whole catalog.
func (h *Handlers) ListFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.db.GetAllFilms(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// GetFilm returns one film.
func (h *Handlers) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	film, err := h.db.GetFilmByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, film)
}

// CreateFilm validates and stores a new film.
func (h *Handlers) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if !decodeBody(w, r, &film) {
		return
	}
	if err := validation.Struct(&film); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	created, err := h.db.CreateFilm(r.Context(), &film)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// UpdateFilm replaces an existing film.
func (h *Handlers) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	var film models.Film
	if !decodeBody(w, r, &film) {
		return
	}
	if err := validation.Struct(&film); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	updated, err := h.db.UpdateFilm(r.Context(), &film)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteFilm removes a film and its dependent rows.
func (h *Handlers) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.db.DeleteFilm(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}

// AddLike records a like and publishes the activity event.
func (h *Handlers) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}
	if err := h.db.AddLike(r.Context(), filmID, userID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.publish(models.EventLike, models.OpAdd, userID, filmID)
	writeJSON(w, r, http.StatusOK, nil)
}

// RemoveLike withdraws a like and publishes the activity event.
func (h *Handlers) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}
	if err := h.db.RemoveLike(r.Context(), filmID, userID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.publish(models.EventLike, models.OpRemove, userID, filmID)
	writeJSON(w, r, http.StatusOK, nil)
}

// PopularFilms ranks films by like count. All of count, genreId and year
// are optional; without count the full ranking is returned.
func (h *Handlers) PopularFilms(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "count")
	if !ok {
		return
	}
	genreID, ok := queryInt(w, r, "genreId")
	if !ok {
		return
	}
	year, ok := queryInt(w, r, "year")
	if !ok {
		return
	}
	if limit != nil && *limit <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid_parameter", "count must be positive")
		return
	}
	films, err := h.db.GetPopularFilms(r.Context(), database.PopularFilter{
		Limit:   limit,
		GenreID: genreID,
		Year:    year,
	})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// CommonFilms returns films liked by both users, most popular first.
func (h *Handlers) CommonFilms(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryInt(w, r, "userId")
	if !ok {
		return
	}
	friendID, ok := queryInt(w, r, "friendId")
	if !ok {
		return
	}
	if userID == nil || friendID == nil {
		writeError(w, r, http.StatusBadRequest, "invalid_parameter", "userId and friendId are required")
		return
	}
	films, err := h.db.GetCommonFilms(r.Context(), *userID, *friendID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// SearchFilms matches the query substring against titles or director
// names per the by parameter.
func (h *Handlers) SearchFilms(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("query")
	if text == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_parameter", "query is required")
		return
	}
	target, err := database.ParseSearchTarget(r.URL.Query().Get("by"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	films, err := h.db.SearchFilms(r.Context(), text, target)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// FilmsByDirector lists a director's films sorted by year or likes.
func (h *Handlers) FilmsByDirector(w http.ResponseWriter, r *http.Request) {
	directorID, ok := pathInt64(w, r, "directorId")
	if !ok {
		return
	}
	sort := database.DirectorSort(r.URL.Query().Get("sortBy"))
	if sort == "" {
		sort = database.SortByLikes
	}
	if sort != database.SortByYear && sort != database.SortByLikes {
		writeError(w, r, http.StatusBadRequest, "invalid_parameter", "sortBy must be year or likes")
		return
	}
	films, err := h.db.GetFilmsByDirector(r.Context(), directorID, sort)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}
