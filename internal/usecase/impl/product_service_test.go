package impl

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/domain/repository"
	"himart/internal/domain/service"
	"himart/internal/infra/qrcode"
	mockService "himart/internal/mocks/service"
	"himart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	*fixture
	blobs     *mockService.MockBlobStore
	publisher *mockService.MockEventPublisher
	srv       usecase.ProductUsecase
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	f := newFixture(t)
	blobs := mockService.NewMockBlobStore(t)
	publisher := mockService.NewMockEventPublisher(t)

	return &productFixture{
		fixture:   f,
		blobs:     blobs,
		publisher: publisher,
		srv: NewProductService(ProductServiceParams{
			Products:    f.products,
			Engagements: f.engagements,
			Sellers:     f.sellers,
			Blobs:       blobs,
			Publisher:   publisher,
			QRCodes:     qrcode.NewQRCodeService(128, "M", "https://shop.example.com"),
			Logger:      f.logger,
		}),
	}
}

func (pf *productFixture) expectEvent(eventType string) {
	pf.publisher.EXPECT().
		PublishProductEvent(mock.Anything, mock.MatchedBy(func(e *service.ProductEvent) bool {
			return e.Type == eventType
		})).
		Return(nil).
		Once()
}

func productInput() usecase.ProductInput {
	return usecase.ProductInput{
		Title:       "Linen Shirt",
		Description: "Breathable summer shirt",
		Price:       40,
		Image:       "https://cdn.example.com/shirt.png",
		Stock:       12,
		Category:    "clothing",
		Keywords:    []string{"linen", "summer"},
		BrandName:   "Acme",
	}
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	seller := entity.Identity{UserID: "seller-1", SessionID: "s1"}

	t.Run("hosted image is kept", func(t *testing.T) {
		pf := newProductFixture(t)
		pf.expectEvent(service.ProductCreated)

		product, err := pf.srv.Create(ctx, seller, productInput())
		require.NoError(t, err)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, "seller-1", product.SellerID)
		assert.Equal(t, "https://cdn.example.com/shirt.png", product.Image)

		stored, err := pf.products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Linen Shirt", stored.Title)
		assert.Equal(t, []string{"linen", "summer"}, stored.Keywords)
	})

	t.Run("inline image is stored as a reference and signed on every read", func(t *testing.T) {
		pf := newProductFixture(t)
		payload := []byte("png-bytes")
		input := productInput()
		input.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

		signed := 0
		pf.blobs.EXPECT().Delete(mock.Anything, mock.AnythingOfType("string")).Return(nil)
		pf.blobs.EXPECT().Upload(mock.Anything, mock.AnythingOfType("string"), "image/png", payload).Return(nil)
		pf.blobs.EXPECT().SignedURL(mock.Anything, mock.AnythingOfType("string")).RunAndReturn(func(_ context.Context, key string) (string, error) {
			signed++

			return fmt.Sprintf("https://storage.example.com/%s?sig=%d", key, signed), nil
		})
		pf.expectEvent(service.ProductCreated)

		product, err := pf.srv.Create(ctx, seller, input)
		require.NoError(t, err)
		key := "product_" + product.ID
		assert.Equal(t, "https://storage.example.com/"+key+"?sig=1", product.Image)

		stored, err := pf.products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ImageRef(key), stored.Image)

		detail, err := pf.srv.Get(ctx, product.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/"+key+"?sig=2", detail.Image)

		t.Run("update echoing the signed url keeps the reference", func(t *testing.T) {
			pf.expectEvent(service.ProductUpdated)
			input := productInput()
			input.Image = detail.Image

			updated, err := pf.srv.Update(ctx, seller, product.ID, input)
			require.NoError(t, err)
			assert.Equal(t, "https://storage.example.com/"+key+"?sig=3", updated.Image)

			stored, err := pf.products.FindByID(ctx, product.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.ImageRef(key), stored.Image)
		})
	})

	t.Run("publish failure does not fail create", func(t *testing.T) {
		pf := newProductFixture(t)
		pf.publisher.EXPECT().PublishProductEvent(mock.Anything, mock.Anything).Return(errors.New("broker down"))

		_, err := pf.srv.Create(ctx, seller, productInput())
		require.NoError(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		pf := newProductFixture(t)

		tests := []struct {
			name   string
			mutate func(*usecase.ProductInput)
		}{
			{name: "discount above price", mutate: func(in *usecase.ProductInput) { in.DiscountPrice = 50 }},
			{name: "discount equal to price", mutate: func(in *usecase.ProductInput) { in.DiscountPrice = 40 }},
			{name: "negative price", mutate: func(in *usecase.ProductInput) { in.Price = -1 }},
			{name: "negative stock", mutate: func(in *usecase.ProductInput) { in.Stock = -1 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				input := productInput()
				tt.mutate(&input)

				_, err := pf.srv.Create(ctx, seller, input)
				assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			})
		}
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	owner := entity.Identity{UserID: "seller-1"}
	pf := newProductFixture(t)
	pf.seedProduct(t, &entity.Product{ID: "p1", Title: "Old", Price: 10, Category: "clothing", SellerID: "seller-1"})

	t.Run("non owner is forbidden and nothing changes", func(t *testing.T) {
		_, err := pf.srv.Update(ctx, entity.Identity{UserID: "intruder"}, "p1", productInput())
		assert.ErrorIs(t, err, domainerrors.ErrNotProductOwner)

		stored, err := pf.products.FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Old", stored.Title)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := pf.srv.Update(ctx, owner, "nope", productInput())
		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	})

	t.Run("owner replaces fields and keeps category when omitted", func(t *testing.T) {
		pf.expectEvent(service.ProductUpdated)
		input := productInput()
		input.Category = ""
		input.DiscountPrice = 30

		updated, err := pf.srv.Update(ctx, owner, "p1", input)
		require.NoError(t, err)
		assert.Equal(t, "Linen Shirt", updated.Title)

		stored, err := pf.products.FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Linen Shirt", stored.Title)
		assert.Equal(t, "clothing", stored.Category)
		assert.InDelta(t, 30, stored.DiscountPrice, 0.001)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	owner := entity.Identity{UserID: "seller-1"}
	pf := newProductFixture(t)
	pf.seedProduct(t, &entity.Product{ID: "p1", Title: "Shirt", Price: 10, SellerID: "seller-1"})
	pf.seedEngagement(t, entity.EngagementClick, "p1", "u1")

	_, err := pf.srv.Get(ctx, "p1", nil)
	require.NoError(t, err)

	err = pf.srv.Delete(ctx, entity.Identity{UserID: "intruder"}, "p1")
	require.ErrorIs(t, err, domainerrors.ErrNotProductOwner)

	pf.blobs.EXPECT().Delete(mock.Anything, "product_p1").Return(errors.New("object missing"))
	pf.expectEvent(service.ProductDeleted)

	require.NoError(t, pf.srv.Delete(ctx, owner, "p1"))

	_, err = pf.srv.Get(ctx, "p1", nil)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	count, err := pf.engagements.Count(ctx, entity.EngagementClick, "p1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProductService_Get(t *testing.T) {
	ctx := context.Background()
	pf := newProductFixture(t)
	pf.seedProduct(t, &entity.Product{ID: "p1", Title: "Shirt", Price: 10, SellerID: "seller-1"})
	pf.seedProduct(t, &entity.Product{ID: "p2", Title: "Hat", Price: 5, SellerID: "ghost"})
	require.NoError(t, pf.sellers.Create(ctx, &entity.Seller{ID: "seller-1", BusinessName: "Acme Goods", AuthorID: "seller-1"}))

	pf.seedEngagement(t, entity.EngagementImpression, "p1", "u1")
	pf.seedEngagement(t, entity.EngagementImpression, "p1", "u2")
	pf.seedEngagement(t, entity.EngagementSold, "p1", "u1")

	t.Run("anonymous read does not record a click", func(t *testing.T) {
		detail, err := pf.srv.Get(ctx, "p1", nil)
		require.NoError(t, err)
		assert.Equal(t, "Acme Goods", detail.SellerName)
		assert.Equal(t, int64(2), detail.TotalImpressions)
		assert.Equal(t, int64(1), detail.TotalSold)
		assert.Zero(t, detail.TotalClicks)
	})

	t.Run("identified reads record one click per user", func(t *testing.T) {
		requester := &entity.Identity{UserID: "u9"}
		_, err := pf.srv.Get(ctx, "p1", requester)
		require.NoError(t, err)
		_, err = pf.srv.Get(ctx, "p1", requester)
		require.NoError(t, err)

		detail, err := pf.srv.Get(ctx, "p1", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), detail.TotalClicks)
	})

	t.Run("missing seller", func(t *testing.T) {
		detail, err := pf.srv.Get(ctx, "p2", nil)
		require.NoError(t, err)
		assert.Equal(t, entity.SellerNameUnknownSeller, detail.SellerName)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := pf.srv.Get(ctx, "nope", nil)
		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	})
}

func TestProductService_Rate(t *testing.T) {
	ctx := context.Background()
	pf := newProductFixture(t)
	pf.seedProduct(t, &entity.Product{ID: "p1", Title: "Shirt", Price: 10, SellerID: "seller-1"})
	rater := entity.Identity{UserID: "u1"}

	for _, rating := range []int{0, 6, -3} {
		err := pf.srv.Rate(ctx, rater, "p1", rating)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed, "rating %d", rating)
	}

	require.NoError(t, pf.srv.Rate(ctx, rater, "p1", 4))
	require.NoError(t, pf.srv.Rate(ctx, rater, "p1", 5))

	count, err := pf.engagements.Count(ctx, entity.EngagementRating, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = pf.srv.Rate(ctx, rater, "nope", 3)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_QRCode(t *testing.T) {
	ctx := context.Background()
	pf := newProductFixture(t)
	pf.seedProduct(t, &entity.Product{ID: "p1", Title: "Shirt", Price: 10, SellerID: "seller-1"})

	png, err := pf.srv.QRCode(ctx, "p1")
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = pf.srv.QRCode(ctx, "nope")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	_, err = pf.srv.QRCode(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrMissingField)
}

func TestProductService_DeleteAlsoHidesCartEntries(t *testing.T) {
	ctx := context.Background()
	pf := newProductFixture(t)
	pf.seedProduct(t, &entity.Product{ID: "p1", Title: "Shirt", Price: 10, SellerID: "seller-1"})
	pf.seedProduct(t, &entity.Product{ID: "p2", Title: "Hat", Price: 5, SellerID: "seller-1"})

	cart := NewCartService(pf.cart, pf.products, pf.blobs, pf.logger)
	require.NoError(t, cart.Add(ctx, "buyer", "p1", 1))
	require.NoError(t, cart.Add(ctx, "buyer", "p2", 1))

	pf.blobs.EXPECT().Delete(mock.Anything, "product_p1").Return(nil)
	pf.expectEvent(service.ProductDeleted)
	require.NoError(t, pf.srv.Delete(ctx, entity.Identity{UserID: "seller-1"}, "p1"))

	lines, err := cart.List(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)

	count, err := cart.Count(ctx, "buyer")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = pf.cart.Find(ctx, "buyer", "p1")
	assert.NoError(t, err, "the stored entry is kept; only the listing hides it")
	assert.False(t, errors.Is(err, repository.ErrCartItemNotFound))
}
