package models

import (
	"time"
)

type Account struct {
	UserID                 string    `json:"userId" db:"user_id"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	Level                  int       `json:"level" db:"level"`
	Exp                    int       `json:"exp" db:"exp"`
	Badge                  bool      `json:"badge" db:"badge"`
	Followers              int       `json:"followers" db:"followers"`
	Followings             int       `json:"followings" db:"followings"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

type Follow struct {
	UserID     string    `json:"userId" db:"user_id"`
	FollowerID string    `json:"followerId" db:"follower_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	PostID    int       `json:"postId" db:"post_id"`
	WriterID  string    `json:"writerId" db:"writer_id"`
	Content   string    `json:"content" db:"content"`
	Likes     int       `json:"likes" db:"like_cnt"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Comment struct {
	CommentID int       `json:"commentId" db:"comment_id"`
	PostID    int       `json:"postId" db:"post_id"`
	WriterID  string    `json:"writerId" db:"writer_id"`
	Content   string    `json:"content" db:"content"`
	Likes     int       `json:"likes" db:"like_cnt"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type ReservedPost struct {
	ReservedID    int       `json:"reservedId" db:"s_id"`
	WriterID      string    `json:"writerId" db:"writer_id"`
	Content       string    `json:"content" db:"content"`
	ScheduledTime time.Time `json:"scheduledTime" db:"scheduled_time"`
	IsPosted      bool      `json:"isPosted" db:"is_posted"`
}

type PostImage struct {
	ImageID   string    `json:"imageId" db:"image_id"`
	PostID    int       `json:"postId" db:"post_id"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
