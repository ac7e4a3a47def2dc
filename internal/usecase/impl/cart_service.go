package impl

import (
	"context"
	"log/slog"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/domain/repository"
	"himart/internal/domain/service"
	"himart/internal/usecase"

	"github.com/pkg/errors"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	images      *imageSigner
	logger      *slog.Logger
}

// NewCartService creates a new cart service instance.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	blobs service.BlobStore,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		images:      newImageSigner(blobs, logger),
		logger:      logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Add puts quantity of a product into the cart, summing with an existing entry.
func (srv *cartService) Add(ctx context.Context, userID, productID string, quantity int) error {
	if productID == "" {
		return domainerrors.MissingField("productId")
	}
	if quantity <= 0 {
		return domainerrors.ErrValidationFailed.WithDetails("quantity must be a positive number")
	}

	item, err := srv.cartRepo.Find(ctx, userID, productID)
	switch {
	case errors.Is(err, repository.ErrCartItemNotFound):
		item = &entity.CartItem{ProductID: productID}
	case err != nil:
		return errors.Wrap(err, "failed to find cart item")
	}

	// Read-modify-write; concurrent adds of the same product may lose an increment.
	item.Quantity += quantity

	if err := srv.cartRepo.Save(ctx, userID, item); err != nil {
		return errors.Wrap(err, "failed to save cart item")
	}

	srv.log(ctx).Debug("Cart item added",
		slog.String("userID", userID),
		slog.String("productID", productID),
		slog.Int("quantity", item.Quantity),
	)

	return nil
}

// Update sets the quantity of an existing entry.
func (srv *cartService) Update(ctx context.Context, userID, productID string, quantity int) (*usecase.CartItemOutput, error) {
	if productID == "" {
		return nil, domainerrors.MissingField("productId")
	}
	if quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
	}

	item, err := srv.cartRepo.Find(ctx, userID, productID)
	if errors.Is(err, repository.ErrCartItemNotFound) {
		return nil, domainerrors.ErrCartItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart item")
	}

	item.Quantity = quantity
	if err := srv.cartRepo.Save(ctx, userID, item); err != nil {
		return nil, errors.Wrap(err, "failed to save cart item")
	}

	return &usecase.CartItemOutput{ID: item.ProductID, ProductID: item.ProductID, Quantity: item.Quantity}, nil
}

// Remove deletes an entry.
func (srv *cartService) Remove(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return domainerrors.MissingField("productId")
	}

	if err := srv.cartRepo.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrCartItemNotFound
		}

		return errors.Wrap(err, "failed to delete cart item")
	}

	return nil
}

// List joins the cart with the live catalog. Entries of deleted products are skipped.
func (srv *cartService) List(ctx context.Context, userID string) ([]*entity.CartLine, error) {
	items, err := srv.cartRepo.List(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart")
	}

	lines := make([]*entity.CartLine, 0, len(items))
	for _, item := range items {
		product, err := srv.productRepo.FindByID(ctx, item.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to find product")
		}

		lines = append(lines, &entity.CartLine{
			ID:        item.ProductID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Title:     product.Title,
			Image:     srv.images.URL(ctx, product.Image),
			Price:     product.EffectivePrice(),
			Stock:     product.Stock,
		})
	}

	return lines, nil
}

// Count returns the number of distinct products in the cart whose product still exists.
func (srv *cartService) Count(ctx context.Context, userID string) (int64, error) {
	count, err := srv.cartRepo.Count(ctx, userID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count cart")
	}
	if count == 0 {
		return 0, nil
	}

	lines, err := srv.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	return int64(len(lines)), nil
}
