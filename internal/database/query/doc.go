// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

// Package query provides type-safe SQL construction for the database
// package. It exists so that query planners hand executors a Description
// (statement plus bound args) instead of concatenated SQL text.
package query
