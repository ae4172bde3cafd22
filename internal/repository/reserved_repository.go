package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"chirpboard/internal/models"
)

// reservedPostRepository stores time-delayed posts. A reserved post starts
// with is_posted = FALSE and is flipped to TRUE exactly once, by PromoteDue,
// when a live post has been created from it. The row is kept afterwards as an
// audit record.
type reservedPostRepository struct {
	db *sqlx.DB
}

func NewReservedPostRepository(db *sqlx.DB) ReservedPostRepository {
	return &reservedPostRepository{db: db}
}

func (r *reservedPostRepository) Reserve(ctx context.Context, reserved *models.ReservedPost) error {
	query := `
		INSERT INTO reserved_post (writer_id, content, scheduled_time)
		VALUES ($1, $2, $3)
		RETURNING s_id
	`

	err := r.db.QueryRowxContext(ctx, query, reserved.WriterID, reserved.Content, reserved.ScheduledTime).
		Scan(&reserved.ReservedID)
	if err != nil {
		return fmt.Errorf("could not create reservation: %w", err)
	}

	return nil
}

func (r *reservedPostRepository) GetByWriter(ctx context.Context, writerID string) ([]models.ReservedPost, error) {
	query := `
		SELECT s_id, writer_id, content, scheduled_time, is_posted
		FROM reserved_post
		WHERE writer_id = $1
		ORDER BY scheduled_time
	`

	var reservations []models.ReservedPost
	err := r.db.SelectContext(ctx, &reservations, query, writerID)
	if err != nil {
		return nil, fmt.Errorf("could not load reservations: %w", err)
	}

	return reservations, nil
}

// PromoteDue promotes every due reservation in one transaction: claim the
// rows with FOR UPDATE so overlapping runs cannot promote the same row
// twice, create a live post per row (created_at is the promotion time, not
// the scheduled time), persist its hashtags, then mark the reservation
// posted. Any failure rolls back the whole batch; the rows stay due and the
// next run retries them. Returns the number of promoted posts.
func (r *reservedPostRepository) PromoteDue(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var due []struct {
		ReservedID int    `db:"s_id"`
		WriterID   string `db:"writer_id"`
		Content    string `db:"content"`
	}

	selectQuery := `
		SELECT s_id, writer_id, content
		FROM reserved_post
		WHERE is_posted = FALSE AND scheduled_time <= NOW()
		FOR UPDATE
	`

	if err := tx.SelectContext(ctx, &due, selectQuery); err != nil {
		return 0, fmt.Errorf("could not claim due reservations: %w", err)
	}

	for _, reservation := range due {
		var postID int

		err := tx.QueryRowxContext(ctx,
			`INSERT INTO posts (content, writer_id) VALUES ($1, $2) RETURNING post_id`,
			reservation.Content, reservation.WriterID).
			Scan(&postID)
		if err != nil {
			return 0, fmt.Errorf("could not promote reservation %d: %w", reservation.ReservedID, err)
		}

		if err := insertTags(ctx, tx, postID, reservation.Content); err != nil {
			return 0, err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE reserved_post SET is_posted = TRUE WHERE s_id = $1`,
			reservation.ReservedID)
		if err != nil {
			return 0, fmt.Errorf("could not mark reservation %d posted: %w", reservation.ReservedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("could not commit promotion: %w", err)
	}

	return len(due), nil
}
