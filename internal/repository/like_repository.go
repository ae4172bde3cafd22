package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// likeRepository handles post and comment likes. A like is a unique
// (target, liker) row, never a counter column; counts are always derived by
// counting rows so the displayed number cannot go stale relative to the
// like table.
type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// LikePost records the like and rewards the post's writer with +10 exp in one
// transaction. Liking twice returns false without touching anything; liking
// your own post records the like but grants no reward. If the post row is
// gone by lookup time, the reward is skipped.
func (r *likeRepository) LikePost(ctx context.Context, likerID string, postID int) (bool, error) {
	if likerID == "" || postID <= 0 {
		return false, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.GetContext(ctx, &one, `SELECT 1 FROM post_like WHERE post_id = $1 AND liker_id = $2 LIMIT 1`, postID, likerID)
	if err == nil {
		return false, nil // already liked
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("could not check post like: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO post_like (post_id, liker_id) VALUES ($1, $2)`, postID, likerID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("could not create post like: %w", err)
	}

	var writer string
	err = tx.GetContext(ctx, &writer, `SELECT writer_id FROM posts WHERE post_id = $1`, postID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("could not resolve post writer: %w", err)
	}

	if writer != "" && writer != likerID {
		if err := awardExp(ctx, tx, writer, postLikeReward); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("could not commit post like: %w", err)
	}

	return true, nil
}

// UnlikePost removes the like and reports whether a row was actually
// deleted. The writer's reward is not reversed.
func (r *likeRepository) UnlikePost(ctx context.Context, likerID string, postID int) (bool, error) {
	if likerID == "" || postID <= 0 {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM post_like WHERE post_id = $1 AND liker_id = $2`, postID, likerID)
	if err != nil {
		return false, fmt.Errorf("could not delete post like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not check deleted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

// LikeComment is the comment-side twin of LikePost with a +5 reward.
func (r *likeRepository) LikeComment(ctx context.Context, likerID string, commentID int) (bool, error) {
	if likerID == "" || commentID <= 0 {
		return false, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.GetContext(ctx, &one, `SELECT 1 FROM comment_like WHERE comment_id = $1 AND liker_id = $2 LIMIT 1`, commentID, likerID)
	if err == nil {
		return false, nil // already liked
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("could not check comment like: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO comment_like (comment_id, liker_id) VALUES ($1, $2)`, commentID, likerID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("could not create comment like: %w", err)
	}

	var writer string
	err = tx.GetContext(ctx, &writer, `SELECT writer_id FROM comment WHERE comment_id = $1`, commentID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("could not resolve comment writer: %w", err)
	}

	if writer != "" && writer != likerID {
		if err := awardExp(ctx, tx, writer, commentLikeReward); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("could not commit comment like: %w", err)
	}

	return true, nil
}

func (r *likeRepository) UnlikeComment(ctx context.Context, likerID string, commentID int) (bool, error) {
	if likerID == "" || commentID <= 0 {
		return false, nil
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM comment_like WHERE comment_id = $1 AND liker_id = $2`, commentID, likerID)
	if err != nil {
		return false, fmt.Errorf("could not delete comment like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not check deleted rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *likeRepository) CountPostLikes(ctx context.Context, postID int) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM post_like WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("could not count post likes: %w", err)
	}

	return count, nil
}

func (r *likeRepository) CountCommentLikes(ctx context.Context, commentID int) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comment_like WHERE comment_id = $1`, commentID)
	if err != nil {
		return 0, fmt.Errorf("could not count comment likes: %w", err)
	}

	return count, nil
}
