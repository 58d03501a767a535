// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package models

// User is a catalog account. Friends carries set semantics (unique ids).
// An empty Name is filled from Login at creation time.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required,excludesall= "`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" validate:"pastdate"`
	Friends  []int  `json:"friends,omitempty"`
}

// DisplayName returns Name, falling back to Login.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}
