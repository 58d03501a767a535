// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"fmt"

	"github.com/ladyCringe/filmorate/internal/models"
)

// InsertFeedEvent appends one activity event. The feed is append-only;
// entity deletion never rewrites history.
func (db *DB) InsertFeedEvent(ctx context.Context, event models.FeedEvent) error {
	if !event.EventType.Valid() {
		return fmt.Errorf("invalid event type %q", event.EventType)
	}
	if !event.Operation.Valid() {
		return fmt.Errorf("invalid operation %q", event.Operation)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := db.nextID(ctx, "feed_events")
	if err != nil {
		return err
	}
	return db.execTimed(ctx, "insert_feed_event",
		`INSERT INTO feed_events (id, ts, user_id, event_type, operation, entity_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, event.Timestamp, event.UserID, string(event.EventType), string(event.Operation), event.EntityID)
}

// GetUserFeed returns a user's activity history oldest first.
func (db *DB) GetUserFeed(ctx context.Context, userID int) ([]models.FeedEvent, error) {
	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, ts, user_id, event_type, operation, entity_id
		 FROM feed_events WHERE user_id = ? ORDER BY ts, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("feed query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	events := []models.FeedEvent{}
	for rows.Next() {
		var ev models.FeedEvent
		var eventType, operation string
		if err := rows.Scan(&ev.EventID, &ev.Timestamp, &ev.UserID, &eventType, &operation, &ev.EntityID); err != nil {
			return nil, fmt.Errorf("failed to scan feed event: %w", err)
		}
		ev.EventType = models.EventType(eventType)
		ev.Operation = models.Operation(operation)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feed iteration failed: %w", err)
	}
	return events, nil
}
