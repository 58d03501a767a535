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

// ListReviews returns reviews most useful first, optionally scoped to
// one film. count defaults to 10.
func (h *Handlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	filmID, ok := queryInt(w, r, "filmId")
	if !ok {
		return
	}
	count, ok := queryInt(w, r, "count")
	if !ok {
		return
	}
	film := 0
	if filmID != nil {
		film = *filmID
	}
	limit := 10
	if count != nil {
		if *count <= 0 {
			writeError(w, r, http.StatusBadRequest, "invalid_parameter", "count must be positive")
			return
		}
		limit = *count
	}
	reviews, err := h.db.GetReviews(r.Context(), film, limit)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reviews)
}

// GetReview returns one review.
func (h *Handlers) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	review, err := h.db.GetReviewByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, review)
}

// CreateReview validates and stores a review, publishing the event.
func (h *Handlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if !decodeBody(w, r, &review) {
		return
	}
	if err := validation.Struct(&review); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	created, err := h.db.CreateReview(r.Context(), &review)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.publish(models.EventReview, models.OpAdd, created.UserID, created.ReviewID)
	writeJSON(w, r, http.StatusCreated, created)
}

// UpdateReview changes a review's content and verdict, publishing the
// event on behalf of the review's author.
func (h *Handlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if !decodeBody(w, r, &review) {
		return
	}
	if err := validation.Struct(&review); err != nil {
		writeError(w, r, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	updated, err := h.db.UpdateReview(r.Context(), &review)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.publish(models.EventReview, models.OpUpdate, updated.UserID, updated.ReviewID)
	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteReview removes a review, publishing the event for its author.
func (h *Handlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	deleted, err := h.db.DeleteReview(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	h.publish(models.EventReview, models.OpRemove, deleted.UserID, deleted.ReviewID)
	writeJSON(w, r, http.StatusNoContent, nil)
}

// LikeReview marks a review useful.
func (h *Handlers) LikeReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}
	if err := h.db.AddReviewLike(r.Context(), reviewID, userID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nil)
}

// DislikeReview marks a review not useful.
func (h *Handlers) DislikeReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}
	if err := h.db.AddReviewDislike(r.Context(), reviewID, userID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nil)
}

// UnvoteReview withdraws a user's vote on a review.
func (h *Handlers) UnvoteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	userID, ok := pathInt(w, r, "userId")
	if !ok {
		return
	}
	if err := h.db.RemoveReviewVote(r.Context(), reviewID, userID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nil)
}
