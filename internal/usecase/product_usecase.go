package usecase

import (
	"context"

	"himart/internal/domain/entity"
)

// ProductInput holds the mutable fields of a product. Image is either a hosted URL or a
// base64 data URL to upload.
type ProductInput struct {
	Title         string
	Description   string
	Price         float64
	DiscountPrice float64
	Image         string
	Stock         int
	Category      string
	Keywords      []string
	BrandName     string
}

// ProductUsecase defines catalog operations. Writes require the requester to own the product.
type ProductUsecase interface {
	Create(ctx context.Context, requester entity.Identity, input ProductInput) (*entity.Product, error)
	Update(ctx context.Context, requester entity.Identity, id string, input ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, requester entity.Identity, id string) error
	// Get returns the product with its engagement figures and records a click for an identified requester.
	Get(ctx context.Context, id string, requester *entity.Identity) (*entity.ProductDetail, error)
	Rate(ctx context.Context, requester entity.Identity, id string, rating int) error
	QRCode(ctx context.Context, id string) ([]byte, error)
}
