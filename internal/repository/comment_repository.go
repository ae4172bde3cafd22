package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chirpboard/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Add inserts the comment and rewards the post's writer with +5 exp in the
// same transaction, unless the commenter is the writer or the post is gone.
func (r *commentRepository) Add(ctx context.Context, comment *models.Comment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO comment (content, writer_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING comment_id, created_at
	`

	err = tx.QueryRowxContext(ctx, query, comment.Content, comment.WriterID, comment.PostID).
		Scan(&comment.CommentID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create comment: %w", err)
	}

	var postWriter string
	err = tx.GetContext(ctx, &postWriter, `SELECT writer_id FROM posts WHERE post_id = $1`, comment.PostID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("could not resolve post writer: %w", err)
	}

	if postWriter != "" && postWriter != comment.WriterID {
		if err := awardExp(ctx, tx, postWriter, commentReward); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByPostID(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
		SELECT c.comment_id, c.post_id, c.writer_id, c.content, c.created_at,
		       (SELECT COUNT(*) FROM comment_like cl WHERE cl.comment_id = c.comment_id) AS like_cnt
		FROM comment c
		WHERE c.post_id = $1
		ORDER BY c.comment_id ASC
	`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("could not load comments: %w", err)
	}

	return comments, nil
}
