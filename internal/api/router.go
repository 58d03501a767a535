// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ladyCringe/filmorate/internal/config"
	"github.com/ladyCringe/filmorate/internal/database"
	"github.com/ladyCringe/filmorate/internal/models"
	"github.com/ladyCringe/filmorate/internal/recommend"
)

// FeedPublisher emits activity events for user actions. Publishing is
// fire and forget.
type FeedPublisher interface {
	Publish(eventType models.EventType, op models.Operation, userID, entityID int)
}

// Handlers bundles the dependencies of every endpoint.
type Handlers struct {
	db     *database.DB
	engine *recommend.Engine
	feed   FeedPublisher
}

// NewHandlers wires the endpoint dependencies. A nil feed disables
// activity publishing.
func NewHandlers(db *database.DB, engine *recommend.Engine, feed FeedPublisher) *Handlers {
	return &Handlers{db: db, engine: engine, feed: feed}
}

func (h *Handlers) publish(eventType models.EventType, op models.Operation, userID, entityID int) {
	if h.feed != nil {
		h.feed.Publish(eventType, op, userID, entityID)
	}
}

// NewRouter assembles the HTTP API.
func NewRouter(cfg *config.Config, h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(cfg.Server.CORSOrigins))
	r.Use(requestLogger)
	if cfg.RateLimit.Enabled {
		r.Use(rateLimiter(cfg.RateLimit))
	}

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/films", func(r chi.Router) {
		r.Get("/", h.ListFilms)
		r.Post("/", h.CreateFilm)
		r.Put("/", h.UpdateFilm)
		r.Get("/popular", h.PopularFilms)
		r.Get("/common", h.CommonFilms)
		r.Get("/search", h.SearchFilms)
		r.Get("/director/{directorId}", h.FilmsByDirector)
		r.Get("/{id}", h.GetFilm)
		r.Delete("/{id}", h.DeleteFilm)
		r.Put("/{id}/like/{userId}", h.AddLike)
		r.Delete("/{id}/like/{userId}", h.RemoveLike)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Put("/", h.UpdateUser)
		r.Get("/{id}", h.GetUser)
		r.Delete("/{id}", h.DeleteUser)
		r.Put("/{id}/friends/{friendId}", h.AddFriend)
		r.Delete("/{id}/friends/{friendId}", h.RemoveFriend)
		r.Get("/{id}/friends", h.ListFriends)
		r.Get("/{id}/friends/common/{otherId}", h.CommonFriends)
		r.Get("/{id}/recommendations", h.Recommendations)
		r.Get("/{id}/feed", h.UserFeed)
	})

	r.Route("/genres", func(r chi.Router) {
		r.Get("/", h.ListGenres)
		r.Get("/{id}", h.GetGenre)
	})

	r.Route("/mpa", func(r chi.Router) {
		r.Get("/", h.ListMpaRatings)
		r.Get("/{id}", h.GetMpaRating)
	})

	r.Route("/directors", func(r chi.Router) {
		r.Get("/", h.ListDirectors)
		r.Post("/", h.CreateDirector)
		r.Put("/", h.UpdateDirector)
		r.Get("/{id}", h.GetDirector)
		r.Delete("/{id}", h.DeleteDirector)
	})

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.ListReviews)
		r.Post("/", h.CreateReview)
		r.Put("/", h.UpdateReview)
		r.Get("/{id}", h.GetReview)
		r.Delete("/{id}", h.DeleteReview)
		r.Put("/{id}/like/{userId}", h.LikeReview)
		r.Put("/{id}/dislike/{userId}", h.DislikeReview)
		r.Delete("/{id}/like/{userId}", h.UnvoteReview)
		r.Delete("/{id}/dislike/{userId}", h.UnvoteReview)
	})

	return r
}
