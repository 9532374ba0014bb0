package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/linkdeck/linkdeck-backend/internal/config"
)

// MaxImageSize is the upload ceiling for bookmark thumbnails.
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrInvalidImageType = errors.New("invalid file type, only JPEG, PNG, GIF, and WebP are allowed")
	ErrImageTooLarge    = errors.New("image exceeds the 5 MB size limit")
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// Uploader stores an image and returns its publicly resolvable URL.
type Uploader interface {
	Upload(ctx context.Context, body io.Reader, contentType, originalName, userEmail string) (string, error)
}

// ValidateImage checks the declared MIME type and size before any storage
// write happens. No content inspection beyond the declared type.
func ValidateImage(fh *multipart.FileHeader) error {
	contentType := fh.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[contentType]; !ok {
		return ErrInvalidImageType
	}
	if fh.Size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// S3Store uploads thumbnails to an S3 (or MinIO-compatible) bucket under
// {env}/{userEmail}/{uuid}.{ext}.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
	env    string
	// baseURL overrides the AWS regional URL format when a custom endpoint
	// is configured.
	baseURL string
}

func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	env := "dev"
	if cfg.IsProduction() {
		env = "prod"
	}

	baseURL := ""
	if cfg.S3Endpoint != "" {
		baseURL = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}

	return &S3Store{
		client:  client,
		bucket:  cfg.S3Bucket,
		region:  cfg.S3Region,
		env:     env,
		baseURL: baseURL,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, body io.Reader, contentType, originalName, userEmail string) (string, error) {
	key := s.objectKey(originalName, userEmail)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	if s.baseURL != "" {
		return s.baseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// objectKey keeps the original extension but replaces the filename with a
// fresh uuid, grouped by environment and owner email.
func (s *S3Store) objectKey(originalName, userEmail string) string {
	name := uuid.New().String()
	if idx := strings.LastIndex(originalName, "."); idx >= 0 && idx < len(originalName)-1 {
		name += originalName[idx:]
	}
	return fmt.Sprintf("%s/%s/%s", s.env, userEmail, name)
}
