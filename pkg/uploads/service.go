package uploads

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/cinevault/cinevault/pkg/apperrors"
	"github.com/cinevault/cinevault/pkg/observability"
)

// MaxImageSize is the largest accepted poster image, in bytes.
const MaxImageSize = 5 << 20

// keyPrefix namespaces poster objects within the bucket.
const keyPrefix = "movies/"

// extensions maps accepted image content types to their object-key suffix.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ObjectStore is the slice of object storage the upload service needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, content io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Service validates incoming images and writes them to object storage.
type Service struct {
	store   ObjectStore
	logger  *observability.Logger
	metrics *observability.Metrics
}

func NewService(store ObjectStore, logger *observability.Logger, metrics *observability.Metrics) *Service {
	return &Service{store: store, logger: logger, metrics: metrics}
}

// Upload stores one poster image and returns its public URL. The size check
// is a guard against callers that bypassed the HTTP body limit; the handler
// enforces the limit on the wire.
func (s *Service) Upload(ctx context.Context, content io.Reader, contentType string, size int64) (string, error) {
	ext, ok := extensions[strings.ToLower(contentType)]
	if !ok {
		return "", apperrors.UnsupportedMediaType("only JPEG, PNG, and WebP images are allowed")
	}
	if size > MaxImageSize {
		return "", apperrors.PayloadTooLarge("image must not exceed 5MB")
	}

	key := keyPrefix + uuid.NewString() + ext
	if err := s.store.Put(ctx, key, content, contentType); err != nil {
		if s.metrics != nil {
			s.metrics.UploadErrorsTotal.Inc()
		}
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	if s.metrics != nil {
		s.metrics.UploadsTotal.Inc()
		s.metrics.UploadBytesTotal.Add(float64(size))
	}
	s.logger.WithField("key", key).Info("image uploaded")

	return s.store.PublicURL(key), nil
}

// DeleteByURL removes a previously uploaded image given its public URL.
// Cleanup is best effort: failures are logged, never surfaced to the caller,
// and URLs that do not point into our bucket are ignored.
func (s *Service) DeleteByURL(ctx context.Context, imageURL string) {
	key, ok := keyFromURL(imageURL)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("failed to delete image")
	}
}

func keyFromURL(imageURL string) (string, bool) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", false
	}
	idx := strings.Index(u.Path, keyPrefix)
	if idx < 0 {
		return "", false
	}
	return u.Path[idx:], true
}
