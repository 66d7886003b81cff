// Package storage provides S3-compatible object storage for product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	catalogapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/catalog"
	infraconfig "github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/config"
)

const (
	defaultRegion        = "us-east-1"
	defaultPresignTTL    = 15 * time.Minute
	uploadedCacheControl = "max-age=3600"
)

var errEmptyKey = errors.New("storage key is required")

var _ catalogapp.ImageStorage = (*S3ObjectStorage)(nil)

// S3ObjectStorage keeps product images in one bucket of an S3-compatible
// service: the BaaS storage S3 endpoint in production, MinIO locally.
type S3ObjectStorage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucket     string
	publicBase string
	presignTTL time.Duration
	logger     *zap.Logger
}

// S3ObjectStorageOption tunes an S3ObjectStorage
type S3ObjectStorageOption func(*S3ObjectStorage)

// WithLogger sets the logger used for upload diagnostics
func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.logger = logger
	}
}

// WithPresignExpiration overrides how long an upload URL stays valid; zero keeps the default
func WithPresignExpiration(d time.Duration) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		if d > 0 {
			s.presignTTL = d
		}
	}
}

// NewS3ObjectStorage builds the storage from cfg. Credentials are static;
// an endpoint without a scheme is assumed to be https.
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	endpoint, err := checkStorageConfig(cfg)
	if err != nil {
		return nil, err
	}

	client, err := newS3Client(cfg, endpoint)
	if err != nil {
		return nil, err
	}

	s := &S3ObjectStorage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		presignTTL: defaultPresignTTL,
		logger:     zap.NewNop(),
	}
	if cfg.PresignExpiration > 0 {
		s.presignTTL = cfg.PresignExpiration
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// checkStorageConfig returns the normalized endpoint of a usable config
func checkStorageConfig(cfg *infraconfig.StorageConfig) (string, error) {
	switch {
	case cfg == nil:
		return "", errors.New("storage configuration is required")
	case cfg.Bucket == "":
		return "", errors.New("storage bucket is required")
	case cfg.AccessKeyID == "":
		return "", errors.New("storage access key is required")
	case cfg.SecretAccessKey == "":
		return "", errors.New("storage secret key is required")
	case cfg.Endpoint == "":
		return "", errors.New("storage endpoint is required")
	}

	endpoint := cfg.Endpoint
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("invalid storage endpoint %q: %w", cfg.Endpoint, err)
	}
	return endpoint, nil
}

func newS3Client(cfg *infraconfig.StorageConfig, endpoint string) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// PresignUpload signs a PUT for key. The signature covers the content type
// and exact length, so the client must upload exactly what it declared.
func (s *S3ObjectStorage) PresignUpload(ctx context.Context, key, contentType string, size int64) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errEmptyKey
	}

	expiresAt := time.Now().Add(s.presignTTL)
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String(uploadedCacheControl),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("presign upload of %s: %w", key, err)
	}

	s.logger.Debug("presigned image upload",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int64("size", size),
		zap.Time("expires_at", expiresAt),
	)
	return req.URL, expiresAt, nil
}

// PublicURL is the unauthenticated URL of key, "" when the bucket is private.
func (s *S3ObjectStorage) PublicURL(key string) string {
	if s.publicBase == "" {
		return ""
	}
	return s.publicBase + "/" + s.bucket + "/" + key
}

// DeleteObject removes key. Deleting a missing object is not an error on S3.
func (s *S3ObjectStorage) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Bucket returns the bucket name
func (s *S3ObjectStorage) Bucket() string {
	return s.bucket
}
