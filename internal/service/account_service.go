package service

import (
	"context"

	"chirpboard/internal/models"
	"chirpboard/internal/repository"
)

type AccountService interface {
	Profile(ctx context.Context, userID string) (*models.Account, error)
	Followers(ctx context.Context, userID string) ([]string, error)
	Followings(ctx context.Context, userID string) ([]string, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
}

func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

func (s *accountService) Profile(ctx context.Context, userID string) (*models.Account, error) {
	return s.accountRepo.GetAccountByID(ctx, userID)
}

func (s *accountService) Followers(ctx context.Context, userID string) ([]string, error) {
	return s.accountRepo.ListFollowers(ctx, userID)
}

func (s *accountService) Followings(ctx context.Context, userID string) ([]string, error) {
	return s.accountRepo.ListFollowings(ctx, userID)
}
