package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirpboard/internal/models"
)

func TestReservedPostRepository_Reserve(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReservedPostRepository(sqlxDB)

	ctx := context.Background()
	scheduled := time.Now().Add(2 * time.Hour)

	t.Run("Successful reservation fills in the id", func(t *testing.T) {
		reserved := &models.ReservedPost{
			WriterID:      "alice",
			Content:       "see you later #soon",
			ScheduledTime: scheduled,
		}

		mock.ExpectQuery(`INSERT INTO reserved_post (writer_id, content, scheduled_time) VALUES ($1, $2, $3) RETURNING s_id`).
			WithArgs("alice", "see you later #soon", scheduled).
			WillReturnRows(sqlmock.NewRows([]string{"s_id"}).AddRow(11))

		err := repo.Reserve(ctx, reserved)

		require.NoError(t, err)
		assert.Equal(t, 11, reserved.ReservedID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReservedPostRepository_PromoteDue(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReservedPostRepository(sqlxDB)

	ctx := context.Background()

	claimQuery := `SELECT s_id, writer_id, content FROM reserved_post WHERE is_posted = FALSE AND scheduled_time <= NOW() FOR UPDATE`

	t.Run("Due reservations become posts with their hashtags", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(claimQuery).
			WillReturnRows(sqlmock.NewRows([]string{"s_id", "writer_id", "content"}).
				AddRow(11, "alice", "good morning #Sunrise #sunrise").
				AddRow(12, "bob", "no tags here"))
		mock.ExpectQuery(`INSERT INTO posts (content, writer_id) VALUES ($1, $2) RETURNING post_id`).
			WithArgs("good morning #Sunrise #sunrise", "alice").
			WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow(101))
		mock.ExpectExec(`INSERT INTO post_tag (post_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`).
			WithArgs(101, "sunrise").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE reserved_post SET is_posted = TRUE WHERE s_id = $1`).
			WithArgs(11).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO posts (content, writer_id) VALUES ($1, $2) RETURNING post_id`).
			WithArgs("no tags here", "bob").
			WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow(102))
		mock.ExpectExec(`UPDATE reserved_post SET is_posted = TRUE WHERE s_id = $1`).
			WithArgs(12).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		promoted, err := repo.PromoteDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, promoted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Nothing due commits an empty batch", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(claimQuery).
			WillReturnRows(sqlmock.NewRows([]string{"s_id", "writer_id", "content"}))
		mock.ExpectCommit()

		promoted, err := repo.PromoteDue(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, promoted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("A failed promotion rolls back the whole batch", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(claimQuery).
			WillReturnRows(sqlmock.NewRows([]string{"s_id", "writer_id", "content"}).
				AddRow(11, "alice", "good morning"))
		mock.ExpectQuery(`INSERT INTO posts (content, writer_id) VALUES ($1, $2) RETURNING post_id`).
			WithArgs("good morning", "alice").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		promoted, err := repo.PromoteDue(ctx)

		assert.Error(t, err)
		assert.Equal(t, 0, promoted)
		assert.Contains(t, err.Error(), "could not promote reservation 11")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReservedPostRepository_GetByWriter(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewReservedPostRepository(sqlxDB)

	ctx := context.Background()
	scheduled := time.Now().Add(time.Hour)

	t.Run("Reservations come back ordered by schedule", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"s_id", "writer_id", "content", "scheduled_time", "is_posted"}).
			AddRow(11, "alice", "first", scheduled, false).
			AddRow(12, "alice", "second", scheduled.Add(time.Hour), true)

		mock.ExpectQuery(`SELECT s_id, writer_id, content, scheduled_time, is_posted FROM reserved_post WHERE writer_id = $1 ORDER BY scheduled_time`).
			WithArgs("alice").
			WillReturnRows(rows)

		reservations, err := repo.GetByWriter(ctx, "alice")

		require.NoError(t, err)
		require.Len(t, reservations, 2)
		assert.Equal(t, 11, reservations[0].ReservedID)
		assert.False(t, reservations[0].IsPosted)
		assert.True(t, reservations[1].IsPosted)
	})
}
