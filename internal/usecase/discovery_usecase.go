package usecase

import (
	"context"

	"himart/internal/domain/entity"
)

// Listing defaults and bounds. Pages past MaxPage are empty.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 10000
)

// ListInput selects one page of the catalog.
type ListInput struct {
	Category string
	Page     int
	Limit    int
	// Requester is set when the caller is logged in; impressions are recorded for them.
	Requester *entity.Identity
	// Preferences drive the user-choices view.
	Preferences []string
}

// DiscoveryUsecase serves the storefront listings and the quick search.
// Every listing view orders or filters only the fetched page.
type DiscoveryUsecase interface {
	List(ctx context.Context, input ListInput) ([]*entity.ProductDetail, error)
	Trending(ctx context.Context, input ListInput) ([]*entity.ProductDetail, error)
	Latest(ctx context.Context, input ListInput) ([]*entity.ProductDetail, error)
	Discounted(ctx context.Context, input ListInput) ([]*entity.ProductDetail, error)
	UserChoices(ctx context.Context, input ListInput) ([]*entity.ProductDetail, error)
	Search(ctx context.Context, query string) ([]*entity.ProductSummary, error)
}
