// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"errors"
	"io"

	"github.com/ladyCringe/filmorate/internal/logging"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDataShape indicates a join result row violated the expected
	// shape: a null film id on a driving row, or a non-null reference id
	// (genre, director, mpa) paired with a null name. The result set must
	// be treated as corrupt; there is no partial output.
	ErrDataShape = errors.New("malformed join row")

	// ErrInvalidSearchTarget indicates an unsupported search target was
	// requested. This is a caller programming error, not retryable.
	ErrInvalidSearchTarget = errors.New("invalid search target")
)

// closeWithLog closes a resource and logs any error.
// Use for cleanup where errors should be acknowledged but not fail the operation.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
