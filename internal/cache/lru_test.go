// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package cache

import (
	"testing"
	"time"
)

func TestLRUGetAdd(t *testing.T) {
	c := NewLRU[int, string](4, time.Minute)

	if _, ok := c.Get(1); ok {
		t.Fatal("empty cache reported a hit")
	}
	c.Add(1, "comedy")
	got, ok := c.Get(1)
	if !ok || got != "comedy" {
		t.Fatalf("Get(1) = %q, %v, want comedy, true", got, ok)
	}

	c.Add(1, "drama")
	if got, _ := c.Get(1); got != "drama" {
		t.Errorf("Get(1) after replace = %q, want drama", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	hits, misses := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats = %d hits, %d misses, want 2, 1", hits, misses)
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[int, string](2, time.Minute)
	c.Add(1, "one")
	c.Add(2, "two")

	// Touch 1 so that 2 becomes the eviction candidate.
	if _, ok := c.Get(1); !ok {
		t.Fatal("lost entry 1")
	}
	c.Add(3, "three")

	if _, ok := c.Get(2); ok {
		t.Error("entry 2 survived eviction, want it dropped")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("recently used entry 1 was evicted")
	}
	if _, ok := c.Get(3); !ok {
		t.Error("new entry 3 missing")
	}
}

func TestLRUExpiry(t *testing.T) {
	c := NewLRU[int, string](4, time.Nanosecond)
	c.Add(1, "stale")
	time.Sleep(time.Millisecond)

	if _, ok := c.Get(1); ok {
		t.Error("expired entry reported as a hit")
	}
	if c.Len() != 0 {
		t.Errorf("Len after lazy expiry = %d, want 0", c.Len())
	}
}

func TestLRURemoveAndPurge(t *testing.T) {
	c := NewLRU[int, string](4, time.Minute)
	c.Add(1, "one")
	c.Add(2, "two")

	c.Remove(1)
	c.Remove(99) // absent key is a no-op
	if _, ok := c.Get(1); ok {
		t.Error("removed entry still present")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after purge = %d, want 0", c.Len())
	}
	if _, ok := c.Get(2); ok {
		t.Error("purged entry still present")
	}
}
