package service

import (
	"chirpboard/internal/config"
	"chirpboard/internal/repository"
	"chirpboard/internal/storage"
)

type Service struct {
	Auth     AuthService
	Account  AccountService
	Follow   FollowService
	Post     PostService
	Comment  CommentService
	Reaction ReactionService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:     NewAuthService(rep.Account, cfg),
		Account:  NewAccountService(rep.Account),
		Follow:   NewFollowService(rep.Follow),
		Post:     NewPostService(rep.Post, rep.Reserved, rep.Image, storage, cfg),
		Comment:  NewCommentService(rep.Comment),
		Reaction: NewReactionService(rep.Like),
	}
}
