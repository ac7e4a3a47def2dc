package impl

import (
	"context"
	"testing"

	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	mockService "himart/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddSumsQuantities(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := NewCartService(f.cart, f.products, nil, f.logger)
	f.seedProduct(t, &entity.Product{ID: "p1", Title: "Shirt", Price: 40, DiscountPrice: 30, Stock: 7, Image: "img"})

	require.NoError(t, srv.Add(ctx, "u1", "p1", 2))
	require.NoError(t, srv.Add(ctx, "u1", "p1", 3))

	lines, err := srv.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, &entity.CartLine{
		ID:        "p1",
		ProductID: "p1",
		Quantity:  5,
		Title:     "Shirt",
		Image:     "img",
		Price:     30,
		Stock:     7,
	}, lines[0])

	count, err := srv.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	other, err := srv.Count(ctx, "u2")
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestCartService_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := NewCartService(f.cart, f.products, nil, f.logger)

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{name: "add zero", run: func() error { return srv.Add(ctx, "u1", "p1", 0) }, wantErr: domainerrors.ErrValidationFailed},
		{name: "add negative", run: func() error { return srv.Add(ctx, "u1", "p1", -2) }, wantErr: domainerrors.ErrValidationFailed},
		{name: "add without product", run: func() error { return srv.Add(ctx, "u1", "", 1) }, wantErr: domainerrors.ErrMissingField},
		{name: "update below one", run: func() error { _, err := srv.Update(ctx, "u1", "p1", 0); return err }, wantErr: domainerrors.ErrValidationFailed},
		{name: "update missing entry", run: func() error { _, err := srv.Update(ctx, "u1", "p1", 2); return err }, wantErr: domainerrors.ErrCartItemNotFound},
		{name: "remove missing entry", run: func() error { return srv.Remove(ctx, "u1", "p1") }, wantErr: domainerrors.ErrCartItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.wantErr)
		})
	}

	count, err := f.cart.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count, "update must never create an entry")
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := NewCartService(f.cart, f.products, nil, f.logger)
	f.seedProduct(t, &entity.Product{ID: "p1", Title: "Shirt", Price: 40})

	require.NoError(t, srv.Add(ctx, "u1", "p1", 1))

	out, err := srv.Update(ctx, "u1", "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, "p1", out.ProductID)
	assert.Equal(t, 4, out.Quantity)

	item, err := f.cart.Find(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	require.NoError(t, srv.Remove(ctx, "u1", "p1"))

	count, err := srv.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCartService_ListSignsStoredImages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	blobs := mockService.NewMockBlobStore(t)
	srv := NewCartService(f.cart, f.products, blobs, f.logger)
	f.seedProduct(t, &entity.Product{ID: "p1", Title: "Shirt", Price: 40, Image: entity.ImageRef("product_p1")})
	f.seedProduct(t, &entity.Product{ID: "p2", Title: "Hat", Price: 10, Image: "https://cdn.example.com/hat.png"})

	blobs.EXPECT().SignedURL(mock.Anything, "product_p1").Return("https://storage.example.com/product_p1?sig=fresh", nil).Once()

	require.NoError(t, srv.Add(ctx, "u1", "p1", 1))
	require.NoError(t, srv.Add(ctx, "u1", "p2", 1))

	lines, err := srv.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	images := map[string]string{}
	for _, line := range lines {
		images[line.ProductID] = line.Image
	}
	assert.Equal(t, "https://storage.example.com/product_p1?sig=fresh", images["p1"])
	assert.Equal(t, "https://cdn.example.com/hat.png", images["p2"])
}
