package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// ErrStorageDisabled is returned when no object storage is configured
var ErrStorageDisabled = errors.New("object storage is not configured")

// ImageStorage is the object store holding product images.
// It is implemented by the infrastructure layer.
type ImageStorage interface {
	// PresignUpload returns a URL accepting one PUT of exactly size bytes
	PresignUpload(ctx context.Context, key, contentType string, size int64) (string, time.Time, error)
	// PublicURL is the URL under which the object is served, empty if not public
	PublicURL(key string) string
	DeleteObject(ctx context.Context, key string) error
}

// UploadImageRequest asks for an upload slot for one product image
type UploadImageRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// UploadImageResponse tells the client where to PUT the image
type UploadImageResponse struct {
	UploadURL string    `json:"upload_url"`
	Path      string    `json:"path"`
	PublicURL string    `json:"public_url,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ImageService issues upload slots for product images and removes them
type ImageService struct {
	products catalog.ProductReader
	storage  ImageStorage
	logger   *zap.Logger
	now      func() time.Time
	suffix   func() string
}

// NewImageService creates a new ImageService
func NewImageService(products catalog.ProductReader, storage ImageStorage, logger *zap.Logger) *ImageService {
	return &ImageService{
		products: products,
		storage:  storage,
		logger:   logger,
		now:      time.Now,
		suffix:   randomSuffix,
	}
}

// RequestUpload validates the image and returns a presigned upload URL
func (s *ImageService) RequestUpload(ctx context.Context, productID string, req UploadImageRequest) (*UploadImageResponse, error) {
	upload := catalog.ImageUpload{
		ProductID:   productID,
		FileName:    req.FileName,
		ContentType: strings.ToLower(req.ContentType),
		Size:        req.Size,
	}
	if err := upload.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	key := upload.Key(s.now(), s.suffix())
	url, expiresAt, err := s.storage.PresignUpload(ctx, key, upload.ContentType, upload.Size)
	if err != nil {
		return nil, err
	}

	s.logger.Info("product image upload issued",
		zap.String("product_id", productID),
		zap.String("path", key),
		zap.Int64("size", upload.Size),
	)

	return &UploadImageResponse{
		UploadURL: url,
		Path:      key,
		PublicURL: s.storage.PublicURL(key),
		ExpiresAt: expiresAt,
	}, nil
}

// DeleteImage removes an image previously uploaded for the product
func (s *ImageService) DeleteImage(ctx context.Context, productID, path string) error {
	if !catalog.ImageBelongsTo(path, productID) {
		return catalog.ErrForeignImagePath
	}
	if err := s.storage.DeleteObject(ctx, path); err != nil {
		return err
	}
	s.logger.Info("product image deleted",
		zap.String("product_id", productID),
		zap.String("path", path),
	)
	return nil
}

func (s *ImageService) requireProduct(ctx context.Context, productID string) error {
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrNotFound
	}
	return nil
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
