package service

import (
	"context"

	"chirpboard/internal/repository"
)

// ReactionService covers likes on posts and comments. Like/Unlike return
// whether the reaction state actually changed; a repeated like or an unlike
// of a missing reaction is a false no-op so retries are always safe.
type ReactionService interface {
	LikePost(ctx context.Context, likerID string, postID int) (bool, error)
	UnlikePost(ctx context.Context, likerID string, postID int) (bool, error)
	LikeComment(ctx context.Context, likerID string, commentID int) (bool, error)
	UnlikeComment(ctx context.Context, likerID string, commentID int) (bool, error)
	PostLikes(ctx context.Context, postID int) (int, error)
	CommentLikes(ctx context.Context, commentID int) (int, error)
}

type reactionService struct {
	likeRepo repository.LikeRepository
}

func NewReactionService(likeRepo repository.LikeRepository) ReactionService {
	return &reactionService{likeRepo: likeRepo}
}

func (s *reactionService) LikePost(ctx context.Context, likerID string, postID int) (bool, error) {
	return s.likeRepo.LikePost(ctx, likerID, postID)
}

func (s *reactionService) UnlikePost(ctx context.Context, likerID string, postID int) (bool, error) {
	return s.likeRepo.UnlikePost(ctx, likerID, postID)
}

func (s *reactionService) LikeComment(ctx context.Context, likerID string, commentID int) (bool, error) {
	return s.likeRepo.LikeComment(ctx, likerID, commentID)
}

func (s *reactionService) UnlikeComment(ctx context.Context, likerID string, commentID int) (bool, error) {
	return s.likeRepo.UnlikeComment(ctx, likerID, commentID)
}

func (s *reactionService) PostLikes(ctx context.Context, postID int) (int, error) {
	return s.likeRepo.CountPostLikes(ctx, postID)
}

func (s *reactionService) CommentLikes(ctx context.Context, commentID int) (int, error) {
	return s.likeRepo.CountCommentLikes(ctx, commentID)
}
