package service

import (
	"context"

	"chirpboard/internal/models"
	"chirpboard/internal/repository"
)

type CommentService interface {
	Add(ctx context.Context, writerID string, postID int, content string) (*models.Comment, error)
	List(ctx context.Context, postID int) ([]models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) Add(ctx context.Context, writerID string, postID int, content string) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   postID,
		WriterID: writerID,
		Content:  content,
	}

	err := s.commentRepo.Add(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) List(ctx context.Context, postID int) ([]models.Comment, error) {
	return s.commentRepo.GetByPostID(ctx, postID)
}
