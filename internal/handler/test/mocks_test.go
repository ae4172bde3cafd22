package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chirpboard/internal/models"
)

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, follower, target string) (bool, error) {
	args := m.Called(ctx, follower, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowService) Unfollow(ctx context.Context, follower, target string) (bool, error) {
	args := m.Called(ctx, follower, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowService) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	args := m.Called(ctx, follower, target)
	return args.Bool(0), args.Error(1)
}

type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) LikePost(ctx context.Context, likerID string, postID int) (bool, error) {
	args := m.Called(ctx, likerID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionService) UnlikePost(ctx context.Context, likerID string, postID int) (bool, error) {
	args := m.Called(ctx, likerID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionService) LikeComment(ctx context.Context, likerID string, commentID int) (bool, error) {
	args := m.Called(ctx, likerID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionService) UnlikeComment(ctx context.Context, likerID string, commentID int) (bool, error) {
	args := m.Called(ctx, likerID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReactionService) PostLikes(ctx context.Context, postID int) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockReactionService) CommentLikes(ctx context.Context, commentID int) (int, error) {
	args := m.Called(ctx, commentID)
	return args.Int(0), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Profile(ctx context.Context, userID string) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) Followers(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountService) Followings(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Add(ctx context.Context, writerID string, postID int, content string) (*models.Comment, error) {
	args := m.Called(ctx, writerID, postID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) List(ctx context.Context, postID int) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}
