// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusware/unihub/pkg/types"
)

// ErrInvalidRating is returned for scores outside 1..5.
var ErrInvalidRating = errors.New("rating score must be between 1 and 5")

// UpsertRating records one user's score for a resource. A second rating by
// the same user replaces the first; the stored average is recomputed from
// the full rating list in the same transaction. Returns the updated
// resource.
func (s *Store) UpsertRating(ctx context.Context, resourceID string, rating types.Rating) (*types.Resource, error) {
	if rating.Score < 1 || rating.Score > 5 {
		return nil, ErrInvalidRating
	}
	if rating.RaterID == "" {
		return nil, fmt.Errorf("%w: rater identity is required", ErrInvalidResource)
	}
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM resources WHERE id = ?`, resourceID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking resource: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ratings (resource_id, rater_id, score, review, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(resource_id, rater_id) DO UPDATE SET
			score=excluded.score, review=excluded.review, created_at=excluded.created_at`,
		resourceID, rating.RaterID, rating.Score, rating.Review,
		rating.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("upserting rating: %w", err)
	}

	// The stored average is always the mean of the current rating list.
	_, err = tx.ExecContext(ctx,
		`UPDATE resources SET
			average_rating = (SELECT AVG(score) FROM ratings WHERE resource_id = ?),
			updated_at = ?
		 WHERE id = ?`,
		resourceID, time.Now().UTC().Format(time.RFC3339Nano), resourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("recomputing average rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing rating: %w", err)
	}
	return s.GetResource(ctx, resourceID)
}

// Engagement counter columns. Increments are single atomic UPDATE
// statements, so concurrent events never lose a count.

// IncrementViews bumps the view counter.
func (s *Store) IncrementViews(ctx context.Context, id string) error {
	return s.increment(ctx, id, "views")
}

// IncrementDownloads bumps the download counter.
func (s *Store) IncrementDownloads(ctx context.Context, id string) error {
	return s.increment(ctx, id, "downloads")
}

// IncrementShares bumps the share counter.
func (s *Store) IncrementShares(ctx context.Context, id string) error {
	return s.increment(ctx, id, "shares")
}

func (s *Store) increment(ctx context.Context, id, column string) error {
	switch column {
	case "views", "downloads", "shares":
	default:
		return fmt.Errorf("unknown counter column %q", column)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE resources SET `+column+` = `+column+` + 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	if err != nil {
		return fmt.Errorf("incrementing %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("incrementing %s: %w", column, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
