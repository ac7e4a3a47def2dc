package impl

import (
	"context"
	"log/slog"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	"himart/internal/domain/service"
)

// imageSigner turns stored bucket references into signed URLs at read time.
// Hosted URLs pass through untouched.
type imageSigner struct {
	blobs  service.BlobStore
	logger *slog.Logger
}

func newImageSigner(blobs service.BlobStore, logger *slog.Logger) *imageSigner {
	return &imageSigner{blobs: blobs, logger: logger}
}

// URL returns a readable URL for image. A signing failure yields an empty string.
func (s *imageSigner) URL(ctx context.Context, image string) string {
	key, ok := entity.ImageKey(image)
	if !ok || s.blobs == nil {
		return image
	}

	url, err := s.blobs.SignedURL(ctx, key)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("Failed to sign image url",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return ""
	}

	return url
}

// Product returns product unchanged or a copy carrying a signed image URL.
func (s *imageSigner) Product(ctx context.Context, product *entity.Product) *entity.Product {
	if _, ok := entity.ImageKey(product.Image); !ok {
		return product
	}

	signed := *product
	signed.Image = s.URL(ctx, product.Image)

	return &signed
}
