// Package imagestore hosts uploaded images on S3. Callers keep the returned
// key; the URL is derived and safe to persist on profiles.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"advonex/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Store interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
	prefix   string
	log      *zap.Logger
}

func NewS3Store(ctx context.Context, cfg utils.StorageConfig, log *zap.Logger) (*S3Store, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("S3_BUCKET and S3_REGION must be configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		prefix:   cfg.FolderPrefix,
		log:      log.With(zap.String("store", "s3")),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, data []byte, contentType, folder string) (*UploadResult, error) {
	key := path.Join(s.prefix, folder, uuid.New().String())

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.log.Error("Failed to upload image", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("upload image %s: %w", key, err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		PublicID: key,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		s.log.Error("Failed to delete image", zap.Error(err), zap.String("key", publicID))
		return fmt.Errorf("delete image %s: %w", publicID, err)
	}
	return nil
}
