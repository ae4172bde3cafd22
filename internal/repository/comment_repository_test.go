package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chirpboard/internal/models"
)

func TestCommentRepository_Add(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewCommentRepository(sqlxDB)

	ctx := context.Background()
	createdAt := time.Now()

	insertQuery := `INSERT INTO comment (content, writer_id, post_id) VALUES ($1, $2, $3) RETURNING comment_id, created_at`

	t.Run("Comment on someone else's post rewards the post writer", func(t *testing.T) {
		comment := &models.Comment{
			PostID:   42,
			WriterID: "alice",
			Content:  "nice one",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(insertQuery).
			WithArgs("nice one", "alice", 42).
			WillReturnRows(sqlmock.NewRows([]string{"comment_id", "created_at"}).AddRow(7, createdAt))
		mock.ExpectQuery(`SELECT writer_id FROM posts WHERE post_id = $1`).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"writer_id"}).AddRow("bob"))
		mock.ExpectQuery(`SELECT level, exp, badge FROM accounts WHERE user_id = $1`).
			WithArgs("bob").
			WillReturnRows(sqlmock.NewRows([]string{"level", "exp", "badge"}).AddRow(2, 10, false))
		mock.ExpectExec(`UPDATE accounts SET level = $1, exp = $2, badge = $3 WHERE user_id = $4`).
			WithArgs(2, 15, false, "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Add(ctx, comment)

		require.NoError(t, err)
		assert.Equal(t, 7, comment.CommentID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Commenting on your own post grants no reward", func(t *testing.T) {
		comment := &models.Comment{
			PostID:   42,
			WriterID: "bob",
			Content:  "replying to myself",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(insertQuery).
			WithArgs("replying to myself", "bob", 42).
			WillReturnRows(sqlmock.NewRows([]string{"comment_id", "created_at"}).AddRow(8, createdAt))
		mock.ExpectQuery(`SELECT writer_id FROM posts WHERE post_id = $1`).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"writer_id"}).AddRow("bob"))
		mock.ExpectCommit()

		err := repo.Add(ctx, comment)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing post skips the reward", func(t *testing.T) {
		comment := &models.Comment{
			PostID:   99,
			WriterID: "alice",
			Content:  "into the void",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(insertQuery).
			WithArgs("into the void", "alice", 99).
			WillReturnRows(sqlmock.NewRows([]string{"comment_id", "created_at"}).AddRow(9, createdAt))
		mock.ExpectQuery(`SELECT writer_id FROM posts WHERE post_id = $1`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectCommit()

		err := repo.Add(ctx, comment)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommentRepository_GetByPostID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewCommentRepository(sqlxDB)

	ctx := context.Background()

	query := `SELECT c.comment_id, c.post_id, c.writer_id, c.content, c.created_at, (SELECT COUNT(*) FROM comment_like cl WHERE cl.comment_id = c.comment_id) AS like_cnt FROM comment c WHERE c.post_id = $1 ORDER BY c.comment_id ASC`

	t.Run("Comments carry their derived like counts", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"comment_id", "post_id", "writer_id", "content", "created_at", "like_cnt"}).
			AddRow(7, 42, "alice", "first", now, 2).
			AddRow(8, 42, "bob", "second", now, 0)

		mock.ExpectQuery(query).
			WithArgs(42).
			WillReturnRows(rows)

		comments, err := repo.GetByPostID(ctx, 42)

		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, 2, comments[0].Likes)
		assert.Equal(t, 0, comments[1].Likes)
	})
}
