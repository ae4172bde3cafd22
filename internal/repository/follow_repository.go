package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// followRepository manages follow edges in the following table. A row
// (user_id, follower_id) means follower_id follows user_id. The denormalized
// followers/followings counters on accounts are updated in the same
// transaction as the edge, so they never drift from the edge rows.
type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	if follower == "" || target == "" {
		return false, nil
	}

	var one int
	query := `SELECT 1 FROM following WHERE user_id = $1 AND follower_id = $2 LIMIT 1`

	err := r.db.GetContext(ctx, &one, query, target, follower)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("could not check follow state: %w", err)
	}

	return true, nil
}

// Follow creates the edge, bumps both counters and rewards the target with
// +50 exp, all in one transaction. Self-follows, empty ids and existing
// edges are rejected as a false no-op; a duplicate-insert race lost to a
// concurrent follower is reported the same way.
func (r *followRepository) Follow(ctx context.Context, follower, target string) (bool, error) {
	if follower == "" || target == "" || follower == target {
		return false, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.GetContext(ctx, &one, `SELECT 1 FROM following WHERE user_id = $1 AND follower_id = $2 LIMIT 1`, target, follower)
	if err == nil {
		return false, nil // already following
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("could not check follow state: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO following (user_id, follower_id) VALUES ($1, $2)`, target, follower)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("could not create follow edge: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE accounts SET followers = followers + 1 WHERE user_id = $1`, target)
	if err != nil {
		return false, fmt.Errorf("could not update follower count: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE accounts SET followings = followings + 1 WHERE user_id = $1`, follower)
	if err != nil {
		return false, fmt.Errorf("could not update following count: %w", err)
	}

	if err := awardExp(ctx, tx, target, followReward); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("could not commit follow: %w", err)
	}

	return true, nil
}

// Unfollow deletes the edge and decrements both counters, floored at zero.
// Deleting a non-existent edge rolls back and returns false. A previously
// granted follow reward is not reversed.
func (r *followRepository) Unfollow(ctx context.Context, follower, target string) (bool, error) {
	if follower == "" || target == "" || follower == target {
		return false, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM following WHERE user_id = $1 AND follower_id = $2`, target, follower)
	if err != nil {
		return false, fmt.Errorf("could not delete follow edge: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not check deleted rows: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `UPDATE accounts SET followers = GREATEST(0, followers - 1) WHERE user_id = $1`, target)
	if err != nil {
		return false, fmt.Errorf("could not update follower count: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE accounts SET followings = GREATEST(0, followings - 1) WHERE user_id = $1`, follower)
	if err != nil {
		return false, fmt.Errorf("could not update following count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("could not commit unfollow: %w", err)
	}

	return true, nil
}
