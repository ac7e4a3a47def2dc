package repository

import (
	"context"
	"errors"

	"himart/internal/domain/entity"
)

// ErrCartItemNotFound is returned when a product is not in the user's cart.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository persists per-user cart entries keyed by product id.
type CartRepository interface {
	Find(ctx context.Context, userID, productID string) (*entity.CartItem, error)

	// Save creates or replaces the entry for item.ProductID.
	Save(ctx context.Context, userID string, item *entity.CartItem) error

	Delete(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]*entity.CartItem, error)

	// Count returns the number of distinct product entries, not the sum of quantities.
	Count(ctx context.Context, userID string) (int64, error)
}
