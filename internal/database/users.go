// Filmorate - Film Catalog and Recommendation Service
// Copyright 2026 ladyCringe
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ladyCringe/filmorate

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ladyCringe/filmorate/internal/models"
)

func scanUsers(rows *sql.Rows) ([]*models.User, error) {
	users := []*models.User{}
	for rows.Next() {
		var u models.User
		var name sql.NullString
		var birthday sql.NullTime
		if err := rows.Scan(&u.ID, &u.Email, &u.Login, &name, &birthday); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		u.Name = name.String
		if birthday.Valid {
			u.Birthday = models.Date{Time: birthday.Time}
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user row iteration failed: %w", err)
	}
	return users, nil
}

// CreateUser inserts a user. An empty display name falls back to the
// login at read time, so it is stored as given.
func (db *DB) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	id, err := db.nextID(ctx, "users")
	if err != nil {
		return nil, err
	}
	err = db.execTimed(ctx, "create_user",
		`INSERT INTO users (id, email, login, name, birthday) VALUES (?, ?, ?, ?, ?)`,
		id, user.Email, user.Login, user.Name, user.Birthday.Time)
	if err != nil {
		return nil, err
	}
	return db.GetUserByID(ctx, id)
}

// UpdateUser replaces a user's fields.
func (db *DB) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "users", "user", user.ID); err != nil {
		return nil, err
	}
	err := db.execTimed(ctx, "update_user",
		`UPDATE users SET email = ?, login = ?, name = ?, birthday = ? WHERE id = ?`,
		user.Email, user.Login, user.Name, user.Birthday.Time, user.ID)
	if err != nil {
		return nil, err
	}
	return db.GetUserByID(ctx, user.ID)
}

// DeleteUser removes a user together with their likes, friendship links
// in both directions, review votes and authored reviews.
func (db *DB) DeleteUser(ctx context.Context, userID int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM review_likes WHERE review_id IN (SELECT id FROM reviews WHERE user_id = ?)`, userID); err != nil {
		return fmt.Errorf("failed to delete review votes: %w", err)
	}
	for _, stmt := range []string{
		`DELETE FROM review_likes WHERE user_id = ?`,
		`DELETE FROM reviews WHERE user_id = ?`,
		`DELETE FROM likes WHERE user_id = ?`,
		`DELETE FROM friendships WHERE user_id = ? OR friend_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	} {
		args := []interface{}{userID}
		if stmt == `DELETE FROM friendships WHERE user_id = ? OR friend_id = ?` {
			args = append(args, userID)
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("failed to delete user %d: %w", userID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user delete: %w", err)
	}
	return nil
}

// GetUserByID returns one user.
func (db *DB) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, email, login, name, birthday FROM users WHERE id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("user query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	users, err := scanUsers(rows)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return users[0], nil
}

// GetAllUsers returns every user ordered by id.
func (db *DB) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, email, login, name, birthday FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("users query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")
	return scanUsers(rows)
}

// AddFriend records a one-directional friendship: the friend does not
// automatically gain the user back.
func (db *DB) AddFriend(ctx context.Context, userID, friendID int) error {
	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return err
	}
	if err := db.requireExists(ctx, "users", "user", friendID); err != nil {
		return err
	}
	return db.execTimed(ctx, "add_friend",
		`INSERT OR IGNORE INTO friendships (user_id, friend_id) VALUES (?, ?)`, userID, friendID)
}

// RemoveFriend drops a friendship link. Removing an absent link is a no-op.
func (db *DB) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return err
	}
	if err := db.requireExists(ctx, "users", "user", friendID); err != nil {
		return err
	}
	return db.execTimed(ctx, "remove_friend",
		`DELETE FROM friendships WHERE user_id = ? AND friend_id = ?`, userID, friendID)
}

// GetFriends lists the users this user has added, ordered by id.
func (db *DB) GetFriends(ctx context.Context, userID int) ([]*models.User, error) {
	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.id, u.email, u.login, u.name, u.birthday
		 FROM friendships fr
		 JOIN users u ON u.id = fr.friend_id
		 WHERE fr.user_id = ?
		 ORDER BY u.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("friends query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")
	return scanUsers(rows)
}

// GetCommonFriends lists users both arguments have added, ordered by id.
func (db *DB) GetCommonFriends(ctx context.Context, userID, otherID int) ([]*models.User, error) {
	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return nil, err
	}
	if err := db.requireExists(ctx, "users", "user", otherID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.id, u.email, u.login, u.name, u.birthday
		 FROM friendships a
		 JOIN friendships b ON b.friend_id = a.friend_id AND b.user_id = ?
		 JOIN users u ON u.id = a.friend_id
		 WHERE a.user_id = ?
		 ORDER BY u.id`, otherID, userID)
	if err != nil {
		return nil, fmt.Errorf("common friends query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")
	return scanUsers(rows)
}

// GetAllUserIDs returns every user id in ascending order. The stable
// order makes downstream scans over the user base deterministic.
func (db *DB) GetAllUserIDs(ctx context.Context) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("user ids query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user id iteration failed: %w", err)
	}
	return ids, nil
}

// GetLikedFilmIDs returns the set of film ids a user has liked.
func (db *DB) GetLikedFilmIDs(ctx context.Context, userID int) (map[int]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT film_id FROM likes WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("liked films query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	liked := make(map[int]struct{})
	for rows.Next() {
		var filmID int
		if err := rows.Scan(&filmID); err != nil {
			return nil, fmt.Errorf("failed to scan liked film id: %w", err)
		}
		liked[filmID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("liked film iteration failed: %w", err)
	}
	return liked, nil
}
