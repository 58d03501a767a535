// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"DISABLED", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInit_WritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("film", "Alien").Msg("catalog entry")

	out := buf.String()
	if !strings.Contains(out, `"film":"Alien"`) {
		t.Errorf("Expected structured field in output, got %q", out)
	}
	if !strings.Contains(out, `"message":"catalog entry"`) {
		t.Errorf("Expected message in output, got %q", out)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("Expected empty request ID, got %q", id)
	}

	ctx = ContextWithRequestID(ctx, "req-42")
	if id := RequestIDFromContext(ctx); id != "req-42" {
		t.Errorf("Expected req-42, got %q", id)
	}
}

func TestGenerateRequestID_Unique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	if a == "" || a == b {
		t.Errorf("Expected distinct non-empty ids, got %q and %q", a, b)
	}
}

func TestSlogHandler_ForwardsToZerolog(t *testing.T) {
	var buf bytes.Buffer
	zl := NewTestLogger(&buf)

	logger := slog.New(&SlogHandler{logger: zl})
	logger.Info("supervisor started", "service", "http")

	out := buf.String()
	if !strings.Contains(out, `"service":"http"`) {
		t.Errorf("Expected attribute in output, got %q", out)
	}
	if !strings.Contains(out, "supervisor started") {
		t.Errorf("Expected message in output, got %q", out)
	}
}

func TestSlogHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	zl := NewTestLogger(&buf)

	logger := slog.New(&SlogHandler{logger: zl}).WithGroup("feed")
	logger.Warn("slow consumer", "lag", int64(3))

	out := buf.String()
	if !strings.Contains(out, `"feed.lag":3`) {
		t.Errorf("Expected grouped key in output, got %q", out)
	}
}
