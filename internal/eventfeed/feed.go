// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

// Package eventfeed publishes user activity (likes, friendships, reviews)
// onto an in-process message bus and persists it into the activity feed
// store. A failed persist never fails the operation that produced the
// event; publishing waits for the consumer's ack so events land in the
// feed in the order they were published.
package eventfeed

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ladyCringe/filmorate/internal/metrics"
	"github.com/ladyCringe/filmorate/internal/models"
)

// Topic carries serialized feed events from API handlers to the consumer.
const Topic = "feed.events"

// Store persists consumed feed events.
type Store interface {
	InsertFeedEvent(ctx context.Context, event models.FeedEvent) error
}

// Feed is the activity feed pipeline: an in-process pub/sub channel with
// a router handler that writes each event to the store.
type Feed struct {
	pubSub *gochannel.GoChannel
	router *message.Router
	store  Store
	logger zerolog.Logger
}

// New builds the feed pipeline. Call Run to start consuming.
func New(store Store, logger zerolog.Logger) (*Feed, error) {
	logger = logger.With().Str("component", "eventfeed").Logger()
	wmLogger := newLoggerAdapter(logger)

	// Publishing blocks until the consumer acks. Without this the
	// channel delivers messages through per-message goroutines, so two
	// events published back to back can persist in either order and the
	// feed cannot break the tie: both carry the same millisecond
	// timestamp. One in-flight message at a time keeps persistence in
	// publish order.
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            64,
		BlockPublishUntilSubscriberAck: true,
	}, wmLogger)

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed router: %w", err)
	}

	f := &Feed{
		pubSub: pubSub,
		router: router,
		store:  store,
		logger: logger,
	}
	router.AddNoPublisherHandler("feed_persist", Topic, pubSub, f.persist)
	return f, nil
}

// Run consumes events until the context is canceled.
func (f *Feed) Run(ctx context.Context) error {
	if err := f.router.Run(ctx); err != nil {
		return fmt.Errorf("feed router stopped: %w", err)
	}
	return nil
}

// Serve implements suture.Service.
func (f *Feed) Serve(ctx context.Context) error {
	return f.Run(ctx)
}

// String names the service in supervisor logs.
func (f *Feed) String() string {
	return "event-feed"
}

// Running closes once the consumer is subscribed. Tests use it to avoid
// publishing before the handler is attached.
func (f *Feed) Running() <-chan struct{} {
	return f.router.Running()
}

// Close shuts the pipeline down, flushing buffered events.
func (f *Feed) Close() error {
	if err := f.router.Close(); err != nil {
		return fmt.Errorf("failed to close feed router: %w", err)
	}
	return nil
}

// Publish emits one activity event stamped with the current time and
// waits for the consumer to take it, which keeps the feed in publish
// order. With no consumer running the event is dropped. Errors are
// logged, not returned: feed delivery is best effort and must not fail
// the user action that triggered it.
func (f *Feed) Publish(eventType models.EventType, op models.Operation, userID, entityID int) {
	event := models.FeedEvent{
		Timestamp: time.Now().UnixMilli(),
		UserID:    userID,
		EventType: eventType,
		Operation: op,
		EntityID:  entityID,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		f.logger.Error().Err(err).Msg("Failed to marshal feed event")
		metrics.FeedEventsDropped.Inc()
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := f.pubSub.Publish(Topic, msg); err != nil {
		f.logger.Error().Err(err).Msg("Failed to publish feed event")
		metrics.FeedEventsDropped.Inc()
		return
	}
	metrics.RecordFeedEvent(string(eventType), string(op))
}

// persist writes one consumed event to the store. Returning an error
// would requeue endlessly on a poisoned message, so failures are logged
// and the message acked.
func (f *Feed) persist(msg *message.Message) error {
	var event models.FeedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		f.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed feed event")
		metrics.FeedEventsDropped.Inc()
		return nil
	}
	if err := f.store.InsertFeedEvent(msg.Context(), event); err != nil {
		f.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("Failed to persist feed event")
		metrics.FeedEventsDropped.Inc()
		return nil
	}
	f.logger.Debug().
		Int("user_id", event.UserID).
		Str("event_type", string(event.EventType)).
		Str("operation", string(event.Operation)).
		Msg("Feed event persisted")
	return nil
}
