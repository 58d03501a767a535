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

func scanReviews(rows *sql.Rows) ([]*models.Review, error) {
	reviews := []*models.Review{}
	for rows.Next() {
		var r models.Review
		var isPositive bool
		if err := rows.Scan(&r.ReviewID, &r.Content, &isPositive, &r.UserID, &r.FilmID, &r.Useful); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		r.IsPositive = &isPositive
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("review row iteration failed: %w", err)
	}
	return reviews, nil
}

// CreateReview inserts a review for an existing user and film. The
// usefulness counter starts at zero.
func (db *DB) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "users", "user", review.UserID); err != nil {
		return nil, err
	}
	if err := db.requireExists(ctx, "films", "film", review.FilmID); err != nil {
		return nil, err
	}

	id, err := db.nextID(ctx, "reviews")
	if err != nil {
		return nil, err
	}
	err = db.execTimed(ctx, "create_review",
		`INSERT INTO reviews (id, content, is_positive, user_id, film_id, useful)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		id, review.Content, *review.IsPositive, review.UserID, review.FilmID)
	if err != nil {
		return nil, err
	}
	return db.GetReviewByID(ctx, id)
}

// UpdateReview changes a review's content and verdict. Author, film and
// usefulness are immutable through this path.
func (db *DB) UpdateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "reviews", "review", review.ReviewID); err != nil {
		return nil, err
	}
	err := db.execTimed(ctx, "update_review",
		`UPDATE reviews SET content = ?, is_positive = ? WHERE id = ?`,
		review.Content, *review.IsPositive, review.ReviewID)
	if err != nil {
		return nil, err
	}
	return db.GetReviewByID(ctx, review.ReviewID)
}

// DeleteReview removes a review and its votes, returning the deleted
// review so the caller can emit a feed event for it.
func (db *DB) DeleteReview(ctx context.Context, reviewID int) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	review, err := db.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM review_likes WHERE review_id = ?`, reviewID); err != nil {
		return nil, fmt.Errorf("failed to delete review votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, reviewID); err != nil {
		return nil, fmt.Errorf("failed to delete review %d: %w", reviewID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review delete: %w", err)
	}
	return review, nil
}

// GetReviewByID returns one review.
func (db *DB) GetReviewByID(ctx context.Context, reviewID int) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, content, is_positive, user_id, film_id, useful
		 FROM reviews WHERE id = ?`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("review query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")

	reviews, err := scanReviews(rows)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, fmt.Errorf("review %d: %w", reviewID, ErrNotFound)
	}
	return reviews[0], nil
}

// GetReviews lists reviews most useful first. A zero film id means all
// films; count bounds the result.
func (db *DB) GetReviews(ctx context.Context, filmID, count int) ([]*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	stmt := `SELECT id, content, is_positive, user_id, film_id, useful FROM reviews`
	args := []interface{}{}
	if filmID != 0 {
		if err := db.requireExists(ctx, "films", "film", filmID); err != nil {
			return nil, err
		}
		stmt += ` WHERE film_id = ?`
		args = append(args, filmID)
	}
	stmt += ` ORDER BY useful DESC, id LIMIT ?`
	args = append(args, count)

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("reviews query failed: %w", err)
	}
	defer closeWithLog(rows, "rows")
	return scanReviews(rows)
}

// voteReview records a like or dislike on a review. A repeated identical
// vote is a no-op; switching sides moves the usefulness counter by two.
func (db *DB) voteReview(ctx context.Context, reviewID, userID int, isLike bool) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "reviews", "review", reviewID); err != nil {
		return err
	}
	if err := db.requireExists(ctx, "users", "user", userID); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing sql.NullBool
	err = tx.QueryRowContext(ctx,
		`SELECT is_like FROM review_likes WHERE review_id = ? AND user_id = ?`,
		reviewID, userID).Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to check review vote: %w", err)
	}

	delta := 0
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO review_likes (review_id, user_id, is_like) VALUES (?, ?, ?)`,
			reviewID, userID, isLike); err != nil {
			return fmt.Errorf("failed to insert review vote: %w", err)
		}
		delta = voteWeight(isLike)
	case existing.Bool == isLike:
		return nil
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE review_likes SET is_like = ? WHERE review_id = ? AND user_id = ?`,
			isLike, reviewID, userID); err != nil {
			return fmt.Errorf("failed to update review vote: %w", err)
		}
		delta = 2 * voteWeight(isLike)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE reviews SET useful = useful + ? WHERE id = ?`, delta, reviewID); err != nil {
		return fmt.Errorf("failed to update review usefulness: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit review vote: %w", err)
	}
	return nil
}

func voteWeight(isLike bool) int {
	if isLike {
		return 1
	}
	return -1
}

// AddReviewLike marks a review useful for this user.
func (db *DB) AddReviewLike(ctx context.Context, reviewID, userID int) error {
	return db.voteReview(ctx, reviewID, userID, true)
}

// AddReviewDislike marks a review not useful for this user.
func (db *DB) AddReviewDislike(ctx context.Context, reviewID, userID int) error {
	return db.voteReview(ctx, reviewID, userID, false)
}

// RemoveReviewVote withdraws a user's vote and reverses its effect on
// the usefulness counter. Removing an absent vote is a no-op.
func (db *DB) RemoveReviewVote(ctx context.Context, reviewID, userID int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := db.requireExists(ctx, "reviews", "review", reviewID); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing bool
	err = tx.QueryRowContext(ctx,
		`SELECT is_like FROM review_likes WHERE review_id = ? AND user_id = ?`,
		reviewID, userID).Scan(&existing)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check review vote: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM review_likes WHERE review_id = ? AND user_id = ?`, reviewID, userID); err != nil {
		return fmt.Errorf("failed to delete review vote: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE reviews SET useful = useful - ? WHERE id = ?`, voteWeight(existing), reviewID); err != nil {
		return fmt.Errorf("failed to update review usefulness: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote removal: %w", err)
	}
	return nil
}
