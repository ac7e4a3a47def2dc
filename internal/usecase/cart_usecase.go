package usecase

import (
	"context"

	"himart/internal/domain/entity"
)

// CartItemOutput is the stored state of a cart entry after an update.
type CartItemOutput struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartUsecase manages the per-user cart.
type CartUsecase interface {
	// Add sums quantity into an existing entry or creates one.
	Add(ctx context.Context, userID, productID string, quantity int) error
	// Update replaces the quantity of an existing entry; it never creates one.
	Update(ctx context.Context, userID, productID string, quantity int) (*CartItemOutput, error)
	Remove(ctx context.Context, userID, productID string) error
	// List joins entries with live products and drops entries whose product is gone.
	List(ctx context.Context, userID string) ([]*entity.CartLine, error)
	// Count is the number of distinct products, not the total quantity.
	Count(ctx context.Context, userID string) (int64, error)
}
