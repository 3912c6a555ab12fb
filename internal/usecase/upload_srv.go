package usecase

import (
	"context"
	"fmt"
	"time"

	"advonex/internal/data/repository"
	"advonex/pkg/apperror"
	"advonex/pkg/imagestore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageSize caps uploads at 5 MiB, matching the multipart parse limit.
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type UploadService interface {
	UploadImage(ctx context.Context, data []byte, contentType string) (*imagestore.UploadResult, error)
	UpdateClientPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*imagestore.UploadResult, error)
	UpdateLawyerPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*imagestore.UploadResult, error)
}

type uploadService struct {
	repo   *repository.Repository
	images imagestore.Store
	log    *zap.Logger
}

func NewUploadService(repo *repository.Repository, images imagestore.Store, log *zap.Logger) UploadService {
	return &uploadService{
		repo:   repo,
		images: images,
		log:    log,
	}
}

func (s *uploadService) upload(ctx context.Context, data []byte, contentType, folder string) (*imagestore.UploadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", apperror.ErrBadRequest)
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: file exceeds 5MB limit", apperror.ErrBadRequest)
	}
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported image type %s", apperror.ErrBadRequest, contentType)
	}

	result, err := s.images.Upload(ctx, data, contentType, folder)
	if err != nil {
		s.log.Error("Failed to upload image", zap.Error(err))
		return nil, fmt.Errorf("%w: upload image", apperror.ErrInternal)
	}
	return result, nil
}

func (s *uploadService) UploadImage(ctx context.Context, data []byte, contentType string) (*imagestore.UploadResult, error) {
	return s.upload(ctx, data, contentType, "uploads")
}

func (s *uploadService) UpdateClientPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*imagestore.UploadResult, error) {
	profile, err := s.repo.ClientProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find client profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: client profile", apperror.ErrNotFound)
	}

	result, err := s.upload(ctx, data, contentType, "profiles/clients")
	if err != nil {
		return nil, err
	}

	profile.Photo = &result.URL
	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.ClientProfile.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: update client photo", apperror.ErrInternal)
	}

	return result, nil
}

func (s *uploadService) UpdateLawyerPhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (*imagestore.UploadResult, error) {
	profile, err := s.repo.LawyerProfile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find lawyer profile", apperror.ErrInternal)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: lawyer profile", apperror.ErrNotFound)
	}

	result, err := s.upload(ctx, data, contentType, "profiles/lawyers")
	if err != nil {
		return nil, err
	}

	profile.Photo = &result.URL
	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.LawyerProfile.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: update lawyer photo", apperror.ErrInternal)
	}

	return result, nil
}
