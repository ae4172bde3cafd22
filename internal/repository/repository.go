package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"chirpboard/internal/models"
)

// Experience rewards for engagement events. Rewards are granted inside the
// same transaction as the event that earned them and are never clawed back.
const (
	followReward      = 50
	postLikeReward    = 10
	commentLikeReward = 5
	commentReward     = 5
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *models.Account, password string) error
	GetAccountByID(ctx context.Context, userID string) (*models.Account, error)
	VerifyPassword(ctx context.Context, userID, password string) (*models.Account, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetAccountByRefreshToken(ctx context.Context, refreshToken string) (*models.Account, error)
	ListFollowers(ctx context.Context, userID string) ([]string, error)
	ListFollowings(ctx context.Context, userID string) ([]string, error)
}

type FollowRepository interface {
	IsFollowing(ctx context.Context, follower, target string) (bool, error)
	Follow(ctx context.Context, follower, target string) (bool, error)
	Unfollow(ctx context.Context, follower, target string) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int) (*models.Post, error)
	GetRecent(ctx context.Context, limit int) ([]models.Post, error)
	GetByWriter(ctx context.Context, writerID string) ([]models.Post, error)
	GetByTag(ctx context.Context, tag string) ([]models.Post, error)
}

type CommentRepository interface {
	Add(ctx context.Context, comment *models.Comment) error
	GetByPostID(ctx context.Context, postID int) ([]models.Comment, error)
}

type LikeRepository interface {
	LikePost(ctx context.Context, likerID string, postID int) (bool, error)
	UnlikePost(ctx context.Context, likerID string, postID int) (bool, error)
	LikeComment(ctx context.Context, likerID string, commentID int) (bool, error)
	UnlikeComment(ctx context.Context, likerID string, commentID int) (bool, error)
	CountPostLikes(ctx context.Context, postID int) (int, error)
	CountCommentLikes(ctx context.Context, commentID int) (int, error)
}

type ReservedPostRepository interface {
	Reserve(ctx context.Context, reserved *models.ReservedPost) error
	GetByWriter(ctx context.Context, writerID string) ([]models.ReservedPost, error)
	PromoteDue(ctx context.Context) (int, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.PostImage) error
	GetByImageID(ctx context.Context, imageID string) (*models.PostImage, error)
	GetByPostID(ctx context.Context, postID int) ([]models.PostImage, error)
	Delete(ctx context.Context, imageID string) error
}

type Repository struct {
	Account  AccountRepository
	Follow   FollowRepository
	Post     PostRepository
	Comment  CommentRepository
	Like     LikeRepository
	Reserved ReservedPostRepository
	Image    ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Account:  NewAccountRepository(db),
		Follow:   NewFollowRepository(db),
		Post:     NewPostRepository(db),
		Comment:  NewCommentRepository(db),
		Like:     NewLikeRepository(db),
		Reserved: NewReservedPostRepository(db),
		Image:    NewImageRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. A duplicate insert race is an expected outcome, not a crash: the
// caller treats it the same as a pre-existing row.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
