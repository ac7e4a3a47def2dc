package service

import "context"

// BlobStore stores binary assets and hands out time-limited read URLs.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error

	// Delete removes key. A missing object is not an error.
	Delete(ctx context.Context, key string) error

	SignedURL(ctx context.Context, key string) (string, error)
}
