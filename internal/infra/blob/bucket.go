// Package blob stores product images in a gocloud bucket (GCS in production, local files in development).
package blob

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"himart/config"
	"himart/internal/domain/service"
	"himart/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// URLs
	_ "gocloud.dev/blob/gcsblob"  // gs:// URLs
	"gocloud.dev/gcerrors"
)

const defaultSignedURLExpiry = 7 * 24 * time.Hour

// Store implements service.BlobStore over a gocloud bucket.
type Store struct {
	bucket *blob.Bucket
	expiry time.Duration
}

// Params holds dependencies for the bucket, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewStore opens the configured bucket URL and closes it on shutdown.
func NewStore(params Params) (service.BlobStore, error) {
	cfg := params.Config.Blob
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("blob.bucketUrl is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open bucket")
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing blob bucket")

			return errors.WithStack(bucket.Close())
		},
	})

	return newStore(bucket, cfg.SignedURLExpiry), nil
}

func newStore(bucket *blob.Bucket, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = defaultSignedURLExpiry
	}

	return &Store{bucket: bucket, expiry: expiry}
}

// Upload writes data under key, replacing any existing object.
func (s *Store) Upload(ctx context.Context, key, contentType string, data []byte) error {
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "failed to write object %s", key)
	}

	return nil
}

// Delete removes key; a missing object is ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete object %s", key)
	}

	return nil
}

// SignedURL returns a read URL for key valid for the configured expiry.
func (s *Store) SignedURL(ctx context.Context, key string) (string, error) {
	url, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{
		Expiry: s.expiry,
		Method: http.MethodGet,
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to sign url for %s", key)
	}

	return url, nil
}
