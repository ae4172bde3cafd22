package service

import (
	"context"

	"chirpboard/internal/repository"
)

// FollowService exposes the social-graph operations. The booleans mean "the
// relationship changed": a self-follow, duplicate follow or unfollow of a
// missing edge is a false no-op, not an error.
type FollowService interface {
	Follow(ctx context.Context, follower, target string) (bool, error)
	Unfollow(ctx context.Context, follower, target string) (bool, error)
	IsFollowing(ctx context.Context, follower, target string) (bool, error)
}

type followService struct {
	followRepo repository.FollowRepository
}

func NewFollowService(followRepo repository.FollowRepository) FollowService {
	return &followService{followRepo: followRepo}
}

func (s *followService) Follow(ctx context.Context, follower, target string) (bool, error) {
	return s.followRepo.Follow(ctx, follower, target)
}

func (s *followService) Unfollow(ctx context.Context, follower, target string) (bool, error) {
	return s.followRepo.Unfollow(ctx, follower, target)
}

func (s *followService) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	return s.followRepo.IsFollowing(ctx, follower, target)
}
