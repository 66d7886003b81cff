package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

// MaxImageSize is the largest product image accepted, in bytes
const MaxImageSize int64 = 5 * 1024 * 1024

// imageFolder is the key prefix of product images inside the bucket
const imageFolder = "products"

// imageExtensions lists accepted image content types and their default extension.
// SVG is excluded.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

var (
	ErrUnsupportedImageType = shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE", "Unsupported image format. Use JPG, PNG, WEBP or GIF.")
	ErrImageTooLarge        = shared.NewDomainError("IMAGE_TOO_LARGE", "Image must not exceed 5MB")
	ErrForeignImagePath     = shared.NewDomainError("INVALID_IMAGE_PATH", "Image path does not belong to this product")
)

// ProductReader checks products referenced by admin operations
type ProductReader interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// ImageUpload describes one image a client is about to upload
type ImageUpload struct {
	ProductID   string
	FileName    string
	ContentType string
	Size        int64
}

// Validate checks the content type and size limits
func (u ImageUpload) Validate() error {
	if _, ok := imageExtensions[strings.ToLower(u.ContentType)]; !ok {
		return ErrUnsupportedImageType
	}
	if u.Size <= 0 || u.Size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// Extension is the file name's extension, or the content type's default when
// the name has none.
func (u ImageUpload) Extension() string {
	if ext := strings.TrimPrefix(path.Ext(u.FileName), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return imageExtensions[strings.ToLower(u.ContentType)]
}

// Key builds the object key products/<product>/<millis>_<suffix>.<ext>
func (u ImageUpload) Key(now time.Time, suffix string) string {
	return fmt.Sprintf("%s/%s/%d_%s.%s", imageFolder, u.ProductID, now.UnixMilli(), suffix, u.Extension())
}

// ImageBelongsTo reports whether key lies in the image folder of productID
func ImageBelongsTo(key, productID string) bool {
	if productID == "" || strings.Contains(key, "..") {
		return false
	}
	return strings.HasPrefix(key, imageFolder+"/"+productID+"/")
}
