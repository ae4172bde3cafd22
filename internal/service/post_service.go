package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"chirpboard/internal/config"
	"chirpboard/internal/models"
	"chirpboard/internal/repository"
	"chirpboard/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, writerID, content string) (*models.Post, error)
	GetPost(ctx context.Context, postID int) (*models.Post, error)
	Feed(ctx context.Context, limit int) ([]models.Post, error)
	PostsByWriter(ctx context.Context, writerID string) ([]models.Post, error)
	SearchByTag(ctx context.Context, tag string) ([]models.Post, error)
	Reserve(ctx context.Context, writerID, content string, scheduledTime time.Time) (*models.ReservedPost, error)
	Reservations(ctx context.Context, writerID string) ([]models.ReservedPost, error)
	AddImage(ctx context.Context, postID int, fileName string, file io.Reader, size int64) (*models.PostImage, error)
	Images(ctx context.Context, postID int) ([]models.PostImage, error)
	DeleteImage(ctx context.Context, imageID string) error
}

type postService struct {
	postRepo     repository.PostRepository
	reservedRepo repository.ReservedPostRepository
	imageRepo    repository.ImageRepository
	storage      storage.Storage
	cfg          *config.Config
}

func NewPostService(
	postRepo repository.PostRepository,
	reservedRepo repository.ReservedPostRepository,
	imageRepo repository.ImageRepository,
	storage storage.Storage,
	cfg *config.Config,
) PostService {
	return &postService{
		postRepo:     postRepo,
		reservedRepo: reservedRepo,
		imageRepo:    imageRepo,
		storage:      storage,
		cfg:          cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, writerID, content string) (*models.Post, error) {
	post := &models.Post{
		WriterID: writerID,
		Content:  content,
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID int) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) Feed(ctx context.Context, limit int) ([]models.Post, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return p.postRepo.GetRecent(ctx, limit)
}

func (p *postService) PostsByWriter(ctx context.Context, writerID string) ([]models.Post, error) {
	return p.postRepo.GetByWriter(ctx, writerID)
}

func (p *postService) SearchByTag(ctx context.Context, tag string) ([]models.Post, error) {
	return p.postRepo.GetByTag(ctx, tag)
}

// Reserve schedules content to go live at scheduledTime. The reservation is
// picked up by the promotion worker once the time arrives.
func (p *postService) Reserve(ctx context.Context, writerID, content string, scheduledTime time.Time) (*models.ReservedPost, error) {
	if !scheduledTime.After(time.Now()) {
		return nil, fmt.Errorf("scheduled time must be in the future")
	}

	reserved := &models.ReservedPost{
		WriterID:      writerID,
		Content:       content,
		ScheduledTime: scheduledTime,
	}

	err := p.reservedRepo.Reserve(ctx, reserved)
	if err != nil {
		return nil, err
	}

	return reserved, nil
}

func (p *postService) Reservations(ctx context.Context, writerID string) ([]models.ReservedPost, error) {
	return p.reservedRepo.GetByWriter(ctx, writerID)
}

func (p *postService) AddImage(ctx context.Context, postID int, fileName string, file io.Reader, size int64) (*models.PostImage, error) {
	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("could not upload image: %w", err)
	}

	image := &models.PostImage{
		PostID:   postID,
		ImageURL: imageURL,
	}

	err = p.imageRepo.Create(ctx, image)
	if err != nil {
		// best effort: do not leave an orphan object behind
		p.storage.DeleteImage(ctx, objectName)
		return nil, fmt.Errorf("could not save image record: %w", err)
	}

	return image, nil
}

func (p *postService) Images(ctx context.Context, postID int) ([]models.PostImage, error) {
	return p.imageRepo.GetByPostID(ctx, postID)
}

func (p *postService) DeleteImage(ctx context.Context, imageID string) error {
	image, err := p.imageRepo.GetByImageID(ctx, imageID)
	if err != nil {
		return err
	}

	objectName := objectNameFromURL(image.ImageURL, p.cfg.MinIO.BucketName)
	if objectName != "" {
		if err := p.storage.DeleteImage(ctx, objectName); err != nil {
			return fmt.Errorf("could not delete stored image: %w", err)
		}
	}

	return p.imageRepo.Delete(ctx, imageID)
}

// objectNameFromURL recovers the object path from a stored image URL of the
// form scheme://endpoint/bucket/object...
func objectNameFromURL(imageURL, bucket string) string {
	marker := "/" + bucket + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return ""
	}
	return imageURL[idx+len(marker):]
}
