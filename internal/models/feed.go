// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package models

// EventType classifies a feed event by the entity it concerns.
type EventType string

// Feed event types.
const (
	EventLike   EventType = "LIKE"
	EventReview EventType = "REVIEW"
	EventFriend EventType = "FRIEND"
)

// Valid reports whether the event type is one of the known values.
func (t EventType) Valid() bool {
	switch t {
	case EventLike, EventReview, EventFriend:
		return true
	}
	return false
}

// Operation classifies what happened to the entity.
type Operation string

// Feed event operations.
const (
	OpAdd    Operation = "ADD"
	OpRemove Operation = "REMOVE"
	OpUpdate Operation = "UPDATE"
)

// Valid reports whether the operation is one of the known values.
func (o Operation) Valid() bool {
	switch o {
	case OpAdd, OpRemove, OpUpdate:
		return true
	}
	return false
}

// FeedEvent is one entry of a user's activity feed. Timestamp is Unix
// milliseconds (the wire format inherited from the public API contract).
type FeedEvent struct {
	EventID   int       `json:"eventId"`
	Timestamp int64     `json:"timestamp"`
	UserID    int       `json:"userId"`
	EventType EventType `json:"eventType"`
	Operation Operation `json:"operation"`
	EntityID  int       `json:"entityId"`
}
