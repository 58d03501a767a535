// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package api

import (
	"net/http"
	"time"

	"github.com/ladyCringe/filmorate/internal/metrics"
	"github.com/ladyCringe/filmorate/internal/models"
	"github.com/ladyCringe/filmorate/internal/validation"
)

// ListUsers returns every account.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.db.GetAllUsers(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, users)
}

// GetUser returns one account.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	user, err := h.db.GetUserByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

// CreateUser validates and stores a new account, defaulting an empty
// display name to the login.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !decodeBody(w, r, &user) {
		return
	}
	if err := validation.Struct(&user); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	created, err := h.db.CreateUser(r.Context(), &user)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// UpdateUser replaces an existing account.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !decodeBody(w, r, &user) {
		return
	}
	if err := validation.Struct(&user); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	updated, err := h.db.UpdateUser(r.Context(), &user)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteUser removes an account and its dependent rows.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if err := h.db.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusNoContent, nil)
}

// AddFriend links a friend one-directionally and publishes the event.
func (h *Handlers) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, "friendId")
	if !ok {
		return
	}
	if err := h.db.AddFriend(r.Context(), userID, friendID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.publish(models.EventFriend, models.OpAdd, userID, friendID)
	writeJSON(w, r, http.StatusOK, nil)
}

// RemoveFriend unlinks a friend and publishes the event.
func (h *Handlers) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, "friendId")
	if !ok {
		return
	}
	if err := h.db.RemoveFriend(r.Context(), userID, friendID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.publish(models.EventFriend, models.OpRemove, userID, friendID)
	writeJSON(w, r, http.StatusOK, nil)
}

// ListFriends returns the user's friends.
func (h *Handlers) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	friends, err := h.db.GetFriends(r.Context(), userID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, friends)
}

// CommonFriends returns friends shared by two users.
func (h *Handlers) CommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	otherID, ok := pathInt(w, r, "otherId")
	if !ok {
		return
	}
	friends, err := h.db.GetCommonFriends(r.Context(), userID, otherID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, friends)
}

// Recommendations returns films from the user's nearest like-overlap
// neighbor that the user has not liked yet.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.db.GetUserByID(r.Context(), userID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	start := time.Now()
	films, err := h.engine.Recommend(r.Context(), userID)
	metrics.RecordRecommendation(time.Since(start))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, films)
}

// UserFeed returns the user's activity history oldest first.
func (h *Handlers) UserFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	events, err := h.db.GetUserFeed(r.Context(), userID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, events)
}
