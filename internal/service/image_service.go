package service

import (
	"context"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const DefaultImageMaxUploadSizeMB = 10

type UploadImageInput struct {
	UserID      uint
	ContentType string
	Content     []byte
}

// ImageService stores post images and serves them back verbatim. Stored
// bytes are never re-encoded; what was uploaded is what readers get.
type ImageService struct {
	repo               repository.ImageRepository
	maxUploadSizeBytes int64
}

func NewImageService(repo repository.ImageRepository, cfg *config.Config) *ImageService {
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB
	if cfg != nil && cfg.ImageMaxUploadSizeMB > 0 {
		maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
	}
	return &ImageService{
		repo:               repo,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

func (s *ImageService) Upload(ctx context.Context, in UploadImageInput) (*models.Image, error) {
	contentType, fields := validation.ValidateImageContentType(in.ContentType)
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("Image is empty")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError("Image exceeds the maximum upload size")
	}

	image := &models.Image{
		ContentType: contentType,
		Data:        in.Content,
		UserID:      in.UserID,
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ImageService) Get(ctx context.Context, id uint) (*models.Image, error) {
	return s.repo.GetByID(ctx, id)
}
