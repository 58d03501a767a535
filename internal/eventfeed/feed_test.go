// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package eventfeed

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ladyCringe/filmorate/internal/logging"
	"github.com/ladyCringe/filmorate/internal/models"
)

type memoryStore struct {
	mu     sync.Mutex
	events []models.FeedEvent
	fail   bool
	gotOne chan struct{}
}

func newMemoryStore() *memoryStore {
	return &memoryStore{gotOne: make(chan struct{}, 16)}
}

func (s *memoryStore) InsertFeedEvent(_ context.Context, event models.FeedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		s.gotOne <- struct{}{}
		return errors.New("store unavailable")
	}
	s.events = append(s.events, event)
	s.gotOne <- struct{}{}
	return nil
}

func (s *memoryStore) snapshot() []models.FeedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FeedEvent(nil), s.events...)
}

func startFeed(t *testing.T, store Store) *Feed {
	t.Helper()
	feed, err := New(store, logging.NewTestLogger(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("feed did not stop")
		}
	})
	select {
	case <-feed.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("feed did not start")
	}
	return feed
}

func waitForEvent(t *testing.T, store *memoryStore) {
	t.Helper()
	select {
	case <-store.gotOne:
	case <-time.After(5 * time.Second):
		t.Fatal("no feed event consumed")
	}
}

func TestPublishPersistsEvent(t *testing.T) {
	store := newMemoryStore()
	feed := startFeed(t, store)

	before := time.Now().UnixMilli()
	feed.Publish(models.EventLike, models.OpAdd, 1, 42)
	waitForEvent(t, store)

	events := store.snapshot()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.EventType != models.EventLike || ev.Operation != models.OpAdd {
		t.Errorf("event = %+v, want LIKE/ADD", ev)
	}
	if ev.UserID != 1 || ev.EntityID != 42 {
		t.Errorf("event ids = user %d entity %d, want 1 and 42", ev.UserID, ev.EntityID)
	}
	if ev.Timestamp < before {
		t.Errorf("timestamp %d predates publish", ev.Timestamp)
	}
}

func TestPublishOrderPreserved(t *testing.T) {
	store := newMemoryStore()
	feed := startFeed(t, store)

	// Back-to-back publishes share a millisecond timestamp, so the
	// feed's ordering depends entirely on persistence order.
	feed.Publish(models.EventFriend, models.OpAdd, 1, 2)
	feed.Publish(models.EventFriend, models.OpRemove, 1, 2)
	feed.Publish(models.EventFriend, models.OpAdd, 1, 3)
	for i := 0; i < 3; i++ {
		waitForEvent(t, store)
	}

	events := store.snapshot()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	wantOps := []models.Operation{models.OpAdd, models.OpRemove, models.OpAdd}
	for i, want := range wantOps {
		if events[i].Operation != want {
			t.Fatalf("events out of order: %+v", events)
		}
	}
	if events[2].EntityID != 3 {
		t.Errorf("events[2] = %+v, want the second friend add", events[2])
	}
}

func TestStoreFailureDoesNotStopConsumer(t *testing.T) {
	store := newMemoryStore()
	store.fail = true
	feed := startFeed(t, store)

	feed.Publish(models.EventReview, models.OpAdd, 1, 7)
	waitForEvent(t, store)

	store.mu.Lock()
	store.fail = false
	store.mu.Unlock()

	feed.Publish(models.EventReview, models.OpUpdate, 1, 7)
	waitForEvent(t, store)

	events := store.snapshot()
	if len(events) != 1 || events[0].Operation != models.OpUpdate {
		t.Errorf("events = %+v, want only the post-recovery event", events)
	}
}
