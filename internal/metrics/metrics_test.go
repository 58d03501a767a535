// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/films", "200"))
	RecordAPIRequest("GET", "/films", 200, 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/films", "200"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestRecordFeedEvent(t *testing.T) {
	before := testutil.ToFloat64(FeedEventsPublished.WithLabelValues("LIKE", "ADD"))
	RecordFeedEvent("LIKE", "ADD")
	after := testutil.ToFloat64(FeedEventsPublished.WithLabelValues("LIKE", "ADD"))
	if after != before+1 {
		t.Errorf("feed_events_published_total = %v, want %v", after, before+1)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequests)
	RecordRecommendation(10 * time.Millisecond)
	after := testutil.ToFloat64(RecommendationRequests)
	if after != before+1 {
		t.Errorf("recommendation_requests_total = %v, want %v", after, before+1)
	}
}
