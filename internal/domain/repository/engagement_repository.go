package repository

import (
	"context"

	"himart/internal/domain/entity"
)

// EngagementRepository stores one record per user per event kind under a product.
type EngagementRepository interface {
	// Exists reports whether userID already produced kind on productID.
	Exists(ctx context.Context, kind entity.EngagementKind, productID, userID string) (bool, error)

	// Record stores the engagement, keyed by (kind, product, user). Recording twice keeps one record.
	Record(ctx context.Context, engagement *entity.Engagement) error

	// Count returns the number of distinct users that produced kind on productID.
	Count(ctx context.Context, kind entity.EngagementKind, productID string) (int64, error)

	// DeleteAll removes every engagement record of a product.
	DeleteAll(ctx context.Context, productID string) error
}
