package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/domain/repository"
	"himart/internal/domain/service"
	"himart/internal/usecase"
	"himart/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Rating bounds
const (
	minRating = 1
	maxRating = 5
)

type productService struct {
	products    repository.ProductRepository
	engagements repository.EngagementRepository
	tracker     *engagementTracker
	images      *imageSigner
	blobs       service.BlobStore
	publisher   service.EventPublisher
	qrcodes     service.QRCodeService
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	Products    repository.ProductRepository
	Engagements repository.EngagementRepository
	Sellers     repository.SellerRepository
	Blobs       service.BlobStore
	Publisher   service.EventPublisher
	QRCodes     service.QRCodeService
	Logger      *slog.Logger
}

// NewProductService creates a new product service instance.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	images := newImageSigner(params.Blobs, params.Logger)

	return &productService{
		products:    params.Products,
		engagements: params.Engagements,
		tracker:     newEngagementTracker(params.Engagements, params.Sellers, images, params.Logger),
		images:      images,
		blobs:       params.Blobs,
		publisher:   params.Publisher,
		qrcodes:     params.QRCodes,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a new product owned by the requester.
func (srv *productService) Create(ctx context.Context, requester entity.Identity, input usecase.ProductInput) (*entity.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	image, err := srv.uploadImage(ctx, entity.ProductBlobKey(id), input.Image)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:            id,
		Title:         input.Title,
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Image:         image,
		Stock:         input.Stock,
		Category:      input.Category,
		Keywords:      input.Keywords,
		BrandName:     input.BrandName,
		SellerID:      requester.UserID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := srv.products.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.String("productID", id), slog.String("sellerID", requester.UserID))
	srv.publish(ctx, service.ProductCreated, product)

	return srv.images.Product(ctx, product), nil
}

// Update replaces the mutable fields of a product the requester owns.
func (srv *productService) Update(ctx context.Context, requester entity.Identity, id string, input usecase.ProductInput) (*entity.Product, error) {
	product, err := srv.ownedProduct(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	image := product.Image
	if !srv.isCurrentImage(product, input.Image) {
		image, err = srv.uploadImage(ctx, product.BlobKey(), input.Image)
		if err != nil {
			return nil, err
		}
	}

	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.DiscountPrice = input.DiscountPrice
	product.Image = image
	product.Stock = input.Stock
	product.Keywords = input.Keywords
	product.BrandName = input.BrandName
	if input.Category != "" {
		product.Category = input.Category
	}

	if err := srv.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.publish(ctx, service.ProductUpdated, product)

	return srv.images.Product(ctx, product), nil
}

// Delete removes a product the requester owns together with its image and engagement records.
func (srv *productService) Delete(ctx context.Context, requester entity.Identity, id string) error {
	product, err := srv.ownedProduct(ctx, requester, id)
	if err != nil {
		return err
	}

	if err := srv.blobs.Delete(ctx, product.BlobKey()); err != nil {
		srv.log(ctx).Warn("Failed to delete product image", slog.String("productID", id), slog.Any("error", err))
	}

	if err := srv.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	if err := srv.engagements.DeleteAll(ctx, id); err != nil {
		srv.log(ctx).Warn("Failed to delete product engagement", slog.String("productID", id), slog.Any("error", err))
	}

	srv.log(ctx).Info("Product deleted", slog.String("productID", id))
	srv.publish(ctx, service.ProductDeleted, product)

	return nil
}

// Get loads a product with its statistics.
func (srv *productService) Get(ctx context.Context, id string, requester *entity.Identity) (*entity.ProductDetail, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := srv.tracker.Detail(ctx, product)

	if requester != nil {
		srv.tracker.TrackOnce(ctx, entity.EngagementClick, product.ID, requester.UserID)
	}

	return detail, nil
}

// Rate stores the requester's rating, replacing an earlier one.
func (srv *productService) Rate(ctx context.Context, requester entity.Identity, id string, rating int) error {
	if rating < minRating || rating > maxRating {
		return domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	if _, err := srv.findProduct(ctx, id); err != nil {
		return err
	}

	err := srv.engagements.Record(ctx, &entity.Engagement{
		ProductID: id,
		UserID:    requester.UserID,
		Kind:      entity.EngagementRating,
		Rating:    rating,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to record rating")
	}

	return nil
}

// QRCode renders a share code pointing at the product page.
func (srv *productService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, domainerrors.MissingField("id")
	}

	if _, err := srv.findProduct(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrcodes.GenerateProductQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate qr code")
	}

	return png, nil
}

func (srv *productService) findProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := srv.products.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func (srv *productService) ownedProduct(ctx context.Context, requester entity.Identity, id string) (*entity.Product, error) {
	product, err := srv.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if !product.OwnedBy(requester.UserID) {
		return nil, domainerrors.ErrNotProductOwner
	}

	return product, nil
}

// isCurrentImage reports whether value is a signed URL previously handed out for the
// product's stored image, so an update echoing it back keeps the reference.
func (srv *productService) isCurrentImage(product *entity.Product, value string) bool {
	key, ok := entity.ImageKey(product.Image)
	if !ok || util.IsDataURL(value) {
		return false
	}

	return strings.Contains(value, key)
}

// uploadImage stores inline data URLs under key and returns the stored reference.
// Anything else is already hosted and returned unchanged.
func (srv *productService) uploadImage(ctx context.Context, key, value string) (string, error) {
	if !util.IsDataURL(value) {
		return value, nil
	}

	contentType, data, err := util.DecodeDataURL(value)
	if err != nil {
		return "", domainerrors.ErrValidationFailed.WithDetails("image is not valid base64 data")
	}

	if err := srv.blobs.Delete(ctx, key); err != nil {
		srv.log(ctx).Warn("Failed to delete previous image", slog.String("key", key), slog.Any("error", err))
	}

	if err := srv.blobs.Upload(ctx, key, contentType, data); err != nil {
		return "", errors.Wrap(err, "failed to upload image")
	}

	srv.log(ctx).Debug("Image uploaded", slog.String("key", key), slog.String("size", util.FormatBytes(int64(len(data)))))

	return entity.ImageRef(key), nil
}

// publish announces a catalog change. Failures are logged and never fail the write.
func (srv *productService) publish(ctx context.Context, eventType string, product *entity.Product) {
	if srv.publisher == nil {
		return
	}

	event := &service.ProductEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		ProductID:  product.ID,
		SellerID:   product.SellerID,
		Category:   product.Category,
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishProductEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish product event",
			slog.String("type", eventType),
			slog.String("productID", product.ID),
			slog.Any("error", err),
		)
	}
}

func validateProductInput(input usecase.ProductInput) error {
	switch {
	case input.Price < 0:
		return domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	case input.DiscountPrice < 0:
		return domainerrors.ErrValidationFailed.WithDetails("discountPrice must not be negative")
	case input.DiscountPrice > 0 && input.DiscountPrice >= input.Price:
		return domainerrors.ErrValidationFailed.WithDetails("discountPrice must be lower than price")
	case input.Stock < 0:
		return domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
	}

	return nil
}
