// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

// Package api exposes the film catalog over HTTP: films, users,
// directors, genres, mpa ratings, reviews, recommendations and the
// activity feed.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/ladyCringe/filmorate/internal/database"
	"github.com/ladyCringe/filmorate/internal/logging"
)

// errorResponse is the JSON error body. The error field is a short
// machine-readable token; message carries the detail.
type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().
			Err(err).
			Str("request_id", logging.RequestIDFromContext(r.Context())).
			Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, errorResponse{
		Error:     code,
		Message:   message,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
}

// writeStoreError maps storage errors onto HTTP statuses: missing
// entities are 404, bad search targets 400, anything else 500 with the
// detail kept server-side.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, database.ErrInvalidSearchTarget):
		writeError(w, r, http.StatusBadRequest, "invalid_search_target", err.Error())
	default:
		logging.Error().
			Err(err).
			Str("request_id", logging.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("Request failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_body", err.Error())
		return false
	}
	return true
}

// pathInt parses an integer path parameter, writing a 400 on failure.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_parameter", name+" must be an integer")
		return 0, false
	}
	return v, true
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_parameter", name+" must be an integer")
		return 0, false
	}
	return v, true
}

// queryInt parses an optional integer query parameter. A missing or
// empty parameter yields nil.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_parameter", name+" must be an integer")
		return nil, false
	}
	return &v, true
}
