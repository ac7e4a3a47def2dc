package repository

import (
	"context"
	"errors"

	"himart/internal/domain/entity"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter selects one page of products in the store's natural order.
// Category is an exact match; an empty Category matches everything.
type ProductFilter struct {
	Category string
	SellerID string
	Offset   int
	Limit    int
}

// ProductRepository persists catalog entries.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// List applies the equality filters first, then Offset and Limit.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
