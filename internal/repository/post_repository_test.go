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

func TestPostRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewPostRepository(sqlxDB)

	ctx := context.Background()
	createdAt := time.Now()

	insertQuery := `INSERT INTO posts (content, writer_id) VALUES ($1, $2) RETURNING post_id, created_at`
	tagQuery := `INSERT INTO post_tag (post_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	t.Run("Post and its normalized tags are stored together", func(t *testing.T) {
		post := &models.Post{
			WriterID: "alice",
			Content:  "shipping it #GoLang and #golang and #새벽코딩",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(insertQuery).
			WithArgs(post.Content, "alice").
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "created_at"}).AddRow(42, createdAt))
		mock.ExpectExec(tagQuery).
			WithArgs(42, "golang").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(tagQuery).
			WithArgs(42, "새벽코딩").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Create(ctx, post)

		require.NoError(t, err)
		assert.Equal(t, 42, post.PostID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Post without tags writes no tag rows", func(t *testing.T) {
		post := &models.Post{
			WriterID: "bob",
			Content:  "plain text only",
		}

		mock.ExpectBegin()
		mock.ExpectQuery(insertQuery).
			WithArgs(post.Content, "bob").
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "created_at"}).AddRow(43, createdAt))
		mock.ExpectCommit()

		err := repo.Create(ctx, post)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewPostRepository(sqlxDB)

	ctx := context.Background()

	query := `SELECT p.post_id, p.writer_id, p.content, p.created_at, (SELECT COUNT(*) FROM post_like pl WHERE pl.post_id = p.post_id) AS like_cnt FROM posts p WHERE p.post_id = $1`

	t.Run("Post carries its derived like count", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"post_id", "writer_id", "content", "created_at", "like_cnt"}).
			AddRow(42, "alice", "hello", time.Now(), 3)

		mock.ExpectQuery(query).
			WithArgs(42).
			WillReturnRows(rows)

		post, err := repo.GetByID(ctx, 42)

		require.NoError(t, err)
		assert.Equal(t, 42, post.PostID)
		assert.Equal(t, 3, post.Likes)
	})

	t.Run("Missing post reports not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		post, err := repo.GetByID(ctx, 99)

		assert.Error(t, err)
		assert.Nil(t, post)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestPostRepository_GetByTag(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewPostRepository(sqlxDB)

	ctx := context.Background()

	query := `SELECT p.post_id, p.writer_id, p.content, p.created_at, (SELECT COUNT(*) FROM post_like pl WHERE pl.post_id = p.post_id) AS like_cnt FROM posts p JOIN post_tag t ON p.post_id = t.post_id WHERE t.tag = $1 ORDER BY p.post_id DESC`

	t.Run("Tag lookup is normalized before querying", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"post_id", "writer_id", "content", "created_at", "like_cnt"}).
			AddRow(42, "alice", "hello #GoLang", time.Now(), 1)

		mock.ExpectQuery(query).
			WithArgs("golang").
			WillReturnRows(rows)

		posts, err := repo.GetByTag(ctx, " GoLang ")

		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, 42, posts[0].PostID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
