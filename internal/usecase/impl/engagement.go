package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	"himart/internal/domain/repository"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// engagementTracker derives product statistics from engagement records and records
// impressions and clicks on behalf of identified requesters.
type engagementTracker struct {
	engagements repository.EngagementRepository
	sellers     repository.SellerRepository
	images      *imageSigner
	logger      *slog.Logger
}

func newEngagementTracker(
	engagements repository.EngagementRepository,
	sellers repository.SellerRepository,
	images *imageSigner,
	logger *slog.Logger,
) *engagementTracker {
	return &engagementTracker{
		engagements: engagements,
		sellers:     sellers,
		images:      images,
		logger:      logger,
	}
}

func (t *engagementTracker) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, t.logger)
}

// Stats counts every engagement kind concurrently and resolves the seller's display name.
// Any failure yields the unknown placeholder with zero counts.
func (t *engagementTracker) Stats(ctx context.Context, product *entity.Product) entity.ProductStats {
	var (
		stats  entity.ProductStats
		counts = make([]int64, len(entity.EngagementKinds))
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range entity.EngagementKinds {
		g.Go(func() error {
			count, err := t.engagements.Count(gctx, kind, product.ID)
			if err != nil {
				return errors.Wrapf(err, "failed to count %s", kind)
			}
			counts[i] = count

			return nil
		})
	}
	g.Go(func() error {
		seller, err := t.sellers.FindByID(gctx, product.SellerID)
		if errors.Is(err, repository.ErrSellerNotFound) {
			stats.SellerName = entity.SellerNameUnknownSeller

			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to find seller")
		}
		stats.SellerName = seller.BusinessName

		return nil
	})

	if err := g.Wait(); err != nil {
		t.log(ctx).Warn("Failed to aggregate product engagement",
			slog.String("productID", product.ID),
			slog.Any("error", err),
		)

		return entity.ProductStats{SellerName: entity.SellerNameUnknown}
	}

	for i, kind := range entity.EngagementKinds {
		switch kind {
		case entity.EngagementImpression:
			stats.TotalImpressions = counts[i]
		case entity.EngagementClick:
			stats.TotalClicks = counts[i]
		case entity.EngagementSold:
			stats.TotalSold = counts[i]
		case entity.EngagementRating:
			stats.TotalRatings = counts[i]
		}
	}

	return stats
}

// Detail merges a product with its statistics and signs its image.
func (t *engagementTracker) Detail(ctx context.Context, product *entity.Product) *entity.ProductDetail {
	return &entity.ProductDetail{
		Product:      t.images.Product(ctx, product),
		ProductStats: t.Stats(ctx, product),
	}
}

// TrackOnce records kind for userID unless one already exists. Failures are logged only.
func (t *engagementTracker) TrackOnce(ctx context.Context, kind entity.EngagementKind, productID, userID string) {
	if userID == "" {
		return
	}

	exists, err := t.engagements.Exists(ctx, kind, productID, userID)
	if err != nil {
		t.log(ctx).Warn("Failed to check engagement",
			slog.String("kind", kind.String()),
			slog.String("productID", productID),
			slog.Any("error", err),
		)

		return
	}
	if exists {
		return
	}

	err = t.engagements.Record(ctx, &entity.Engagement{
		ProductID: productID,
		UserID:    userID,
		Kind:      kind,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.log(ctx).Warn("Failed to record engagement",
			slog.String("kind", kind.String()),
			slog.String("productID", productID),
			slog.Any("error", err),
		)
	}
}
