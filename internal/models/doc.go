// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

// Package models defines the domain entities shared across the service:
// films with their genre, director and like sets, users and friendships,
// reviews, and activity feed events. The package has no dependencies on
// storage or transport; validation rules are expressed as struct tags and
// enforced by the validation package.
package models
