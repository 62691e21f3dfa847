// Package media stores product images uploaded from the admin panel.
package media

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jeenmata/impex/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultMaxImageSize is the largest accepted image, 5 MB
const DefaultMaxImageSize int64 = 5 << 20

// imageExtensions maps the accepted content types to file extensions. SVG is
// not accepted since it can carry scripts.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStorage is where uploaded files end up
type ObjectStorage interface {
	// Upload stores data under key
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// DeleteObject removes the object stored under key
	DeleteObject(ctx context.Context, key string) error
	// PublicURL returns the URL browsers use to load the object
	PublicURL(key string) string
}

// UploadedImage describes a stored image
type UploadedImage struct {
	Key         string `json:"key"`
	URL         string `json:"file_url"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// ImageService validates and stores product images
type ImageService struct {
	storage ObjectStorage
	maxSize int64
	logger  *zap.Logger
}

// NewImageService creates an ImageService. maxSize <= 0 uses DefaultMaxImageSize.
func NewImageService(storage ObjectStorage, maxSize int64, logger *zap.Logger) *ImageService {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{storage: storage, maxSize: maxSize, logger: logger}
}

// Upload reads an image and stores it under products/<uuid><ext>. The
// content type is sniffed from the data; the declared type is only used
// for the log line.
func (s *ImageService) Upload(ctx context.Context, filename, declaredType string, r io.Reader) (*UploadedImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", "Failed to read uploaded file")
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("EMPTY_FILE", "Uploaded file is empty")
	}
	if int64(len(data)) > s.maxSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "Image must be 5MB or smaller")
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_FILE_TYPE", "Only JPEG, PNG, WebP and GIF images are allowed")
	}
	if fromName := strings.ToLower(filepath.Ext(filename)); fromName == ".jpeg" && ext == ".jpg" {
		ext = fromName
	}

	key := "products/" + uuid.NewString() + ext
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Error("Failed to store image",
			zap.String("key", key),
			zap.String("filename", filename),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Stored product image",
		zap.String("key", key),
		zap.String("filename", filename),
		zap.String("declared_type", declaredType),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)))

	return &UploadedImage{
		Key:         key,
		URL:         s.storage.PublicURL(key),
		ContentType: contentType,
		Size:        len(data),
	}, nil
}

