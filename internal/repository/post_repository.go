package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chirpboard/internal/hashtag"
	"chirpboard/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its extracted hashtags in one transaction.
// The generated post id and creation time are written back into post.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (content, writer_id)
		VALUES ($1, $2)
		RETURNING post_id, created_at
	`

	err = tx.QueryRowxContext(ctx, query, post.Content, post.WriterID).
		Scan(&post.PostID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("could not create post: %w", err)
	}

	if err := insertTags(ctx, tx, post.PostID, post.Content); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit post: %w", err)
	}

	return nil
}

// insertTags persists the hashtags found in content for postID. The
// (post_id, tag) pair is unique; an already-present tag is skipped, not an
// error. Shared by immediate posting and reserved-post promotion.
func insertTags(ctx context.Context, tx *sqlx.Tx, postID int, content string) error {
	for _, tag := range hashtag.Extract(content) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO post_tag (post_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, tag)
		if err != nil {
			return fmt.Errorf("could not save tag %q: %w", tag, err)
		}
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int) (*models.Post, error) {
	query := `
		SELECT p.post_id, p.writer_id, p.content, p.created_at,
		       (SELECT COUNT(*) FROM post_like pl WHERE pl.post_id = p.post_id) AS like_cnt
		FROM posts p
		WHERE p.post_id = $1
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %d not found", postID)
		}
		return nil, fmt.Errorf("could not load post: %w", err)
	}

	return &post, nil
}

// GetRecent returns the newest posts. Like counts are derived by counting
// post_like rows at read time; they are never cached on the post.
func (r *postRepository) GetRecent(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
		SELECT p.post_id, p.writer_id, p.content, p.created_at,
		       (SELECT COUNT(*) FROM post_like pl WHERE pl.post_id = p.post_id) AS like_cnt
		FROM posts p
		ORDER BY p.post_id DESC
		LIMIT $1
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, limit)
	if err != nil {
		return nil, fmt.Errorf("could not load recent posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetByWriter(ctx context.Context, writerID string) ([]models.Post, error) {
	query := `
		SELECT p.post_id, p.writer_id, p.content, p.created_at,
		       (SELECT COUNT(*) FROM post_like pl WHERE pl.post_id = p.post_id) AS like_cnt
		FROM posts p
		WHERE p.writer_id = $1
		ORDER BY p.post_id DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, writerID)
	if err != nil {
		return nil, fmt.Errorf("could not load posts of %s: %w", writerID, err)
	}

	return posts, nil
}

func (r *postRepository) GetByTag(ctx context.Context, tag string) ([]models.Post, error) {
	query := `
		SELECT p.post_id, p.writer_id, p.content, p.created_at,
		       (SELECT COUNT(*) FROM post_like pl WHERE pl.post_id = p.post_id) AS like_cnt
		FROM posts p
		JOIN post_tag t ON p.post_id = t.post_id
		WHERE t.tag = $1
		ORDER BY p.post_id DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, hashtag.Normalize(tag))
	if err != nil {
		return nil, fmt.Errorf("could not load posts for tag %q: %w", tag, err)
	}

	return posts, nil
}
