package impl

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/domain/repository"
	mockService "himart/internal/mocks/service"
	"himart/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDiscoveryService(f *fixture) usecase.DiscoveryUsecase {
	return NewDiscoveryService(DiscoveryServiceParams{
		Products:    f.products,
		Engagements: f.engagements,
		Sellers:     f.sellers,
		Logger:      f.logger,
	})
}

func detailIDs(details []*entity.ProductDetail) []string {
	ids := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
	}

	return ids
}

func TestDiscoveryService_ListPagination(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := newTestDiscoveryService(f)

	for i := 1; i <= 5; i++ {
		category := "home"
		if i%2 == 0 {
			category = "garden"
		}
		f.seedProduct(t, &entity.Product{ID: fmt.Sprintf("p%d", i), Title: "Item", Price: 10, Category: category})
	}

	tests := []struct {
		name  string
		input usecase.ListInput
		want  []string
	}{
		{name: "defaults", input: usecase.ListInput{}, want: []string{"p1", "p2", "p3", "p4", "p5"}},
		{name: "second page", input: usecase.ListInput{Page: 2, Limit: 2}, want: []string{"p3", "p4"}},
		{name: "past the end", input: usecase.ListInput{Page: 4, Limit: 2}, want: []string{}},
		{name: "category before offset", input: usecase.ListInput{Category: "home", Page: 2, Limit: 2}, want: []string{"p5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := srv.List(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, detailIDs(got))
		})
	}
}

func TestDiscoveryService_ListTruncatesDescriptionsAndRecordsImpressions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := newTestDiscoveryService(f)

	long := strings.Repeat("a", 200)
	f.seedProduct(t, &entity.Product{ID: "p1", Title: "Long", Price: 10, Description: long})
	f.seedProduct(t, &entity.Product{ID: "p2", Title: "Short", Price: 10, Description: "short"})

	got, err := srv.List(ctx, usecase.ListInput{Requester: &entity.Identity{UserID: "u1"}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, strings.Repeat("a", 147)+"...", got[0].Description)
	assert.Equal(t, "short", got[1].Description)

	_, err = srv.List(ctx, usecase.ListInput{Requester: &entity.Identity{UserID: "u1"}})
	require.NoError(t, err)
	_, err = srv.List(ctx, usecase.ListInput{})
	require.NoError(t, err)

	count, err := f.engagements.Count(ctx, entity.EngagementImpression, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, long, stored.Description)
}

func TestDiscoveryService_TrendingSortsWithinPage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := newTestDiscoveryService(f)

	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		f.seedProduct(t, &entity.Product{ID: id, Title: id, Price: 10})
	}
	// p2: 1 impression + 1 click, p1: 3 impressions, p4 is the most popular but on page 2.
	f.seedEngagement(t, entity.EngagementImpression, "p1", "a")
	f.seedEngagement(t, entity.EngagementImpression, "p1", "b")
	f.seedEngagement(t, entity.EngagementImpression, "p1", "c")
	f.seedEngagement(t, entity.EngagementImpression, "p2", "a")
	f.seedEngagement(t, entity.EngagementClick, "p2", "a")
	for _, u := range []string{"a", "b", "c", "d", "e"} {
		f.seedEngagement(t, entity.EngagementClick, "p4", u)
	}

	got, err := srv.Trending(ctx, usecase.ListInput{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, detailIDs(got))

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Popularity(), got[i].Popularity())
	}
}

func TestDiscoveryService_Latest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := newTestDiscoveryService(f)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.seedProduct(t, &entity.Product{ID: "p1", Title: "a", Price: 1, CreatedAt: base})
	f.seedProduct(t, &entity.Product{ID: "p2", Title: "b", Price: 1, CreatedAt: base.Add(48 * time.Hour)})
	f.seedProduct(t, &entity.Product{ID: "p3", Title: "c", Price: 1, CreatedAt: base.Add(24 * time.Hour)})

	got, err := srv.Latest(ctx, usecase.ListInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3", "p1"}, detailIDs(got))
}

func TestDiscoveryService_DiscountedFiltersFetchedPageOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := newTestDiscoveryService(f)

	f.seedProduct(t, &entity.Product{ID: "p1", Title: "a", Price: 10})
	f.seedProduct(t, &entity.Product{ID: "p2", Title: "b", Price: 10, DiscountPrice: 8})
	f.seedProduct(t, &entity.Product{ID: "p3", Title: "c", Price: 10, DiscountPrice: 5})

	got, err := srv.Discounted(ctx, usecase.ListInput{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, detailIDs(got))

	got, err = srv.Discounted(ctx, usecase.ListInput{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoveryService_UserChoices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := newTestDiscoveryService(f)

	f.seedProduct(t, &entity.Product{ID: "p1", Title: "Smartphone X", Price: 10, Category: "phones"})
	f.seedProduct(t, &entity.Product{ID: "p2", Title: "Desk Lamp", Price: 10, Category: "Electronics"})
	f.seedProduct(t, &entity.Product{ID: "p3", Title: "Sofa", Price: 10, Category: "furniture"})

	got, err := srv.UserChoices(ctx, usecase.ListInput{Preferences: []string{"electronics", "smartphone"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, detailIDs(got))

	got, err = srv.UserChoices(ctx, usecase.ListInput{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoveryService_Search(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	srv := newTestDiscoveryService(f)

	f.seedProduct(t, &entity.Product{ID: "p1", Title: "Plain mug", Price: 1, Keywords: []string{"shirt"}})
	f.seedProduct(t, &entity.Product{ID: "p2", Title: "Linen Shirt", Price: 1, BrandName: "ShirtCo"})
	f.seedProduct(t, &entity.Product{ID: "p3", Title: "Sofa", Price: 1})
	f.seedProduct(t, &entity.Product{ID: "p4", Title: "Cap", Price: 1, BrandName: "Shirtless"})
	for i := 5; i <= 9; i++ {
		f.seedProduct(t, &entity.Product{ID: fmt.Sprintf("p%d", i), Title: "Tee shirt", Price: 1})
	}

	t.Run("too short", func(t *testing.T) {
		_, err := srv.Search(ctx, "ab")
		assert.ErrorIs(t, err, domainerrors.ErrQueryTooShort)
	})

	t.Run("surrounding spaces count toward the length", func(t *testing.T) {
		f.seedProduct(t, &entity.Product{ID: "p10", Title: "Crab abacus", Price: 1})

		got, err := srv.Search(ctx, " ab")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "p10", got[0].ID)
	})

	t.Run("ranked and capped", func(t *testing.T) {
		got, err := srv.Search(ctx, "SHIRT")
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Equal(t, "p2", got[0].ID)
		for _, s := range got {
			assert.NotEqual(t, "p3", s.ID)
		}
	})

	t.Run("brand and keyword matches", func(t *testing.T) {
		got, err := srv.Search(ctx, "shirtless")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, &entity.ProductSummary{ID: "p4", Title: "Cap"}, got[0])
	})
}

// pageRecorder remembers the last filter the catalog was listed with.
type pageRecorder struct {
	repository.ProductRepository
	calls  int
	filter repository.ProductFilter
}

func (r *pageRecorder) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	r.calls++
	r.filter = filter

	return r.ProductRepository.List(ctx, filter)
}

func TestDiscoveryService_PageBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	recorder := &pageRecorder{ProductRepository: f.products}
	srv := NewDiscoveryService(DiscoveryServiceParams{
		Products:    recorder,
		Engagements: f.engagements,
		Sellers:     f.sellers,
		Logger:      f.logger,
	})
	f.seedProduct(t, &entity.Product{ID: "p1", Title: "Item", Price: 1})

	t.Run("limit is capped", func(t *testing.T) {
		got, err := srv.List(ctx, usecase.ListInput{Page: 2, Limit: 1000000})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Equal(t, usecase.MaxLimit, recorder.filter.Limit)
		assert.Equal(t, usecase.MaxLimit, recorder.filter.Offset)
	})

	tests := []struct {
		name  string
		input usecase.ListInput
	}{
		{name: "page past the bound", input: usecase.ListInput{Page: usecase.MaxPage + 1}},
		{name: "page that would overflow the offset", input: usecase.ListInput{Page: math.MaxInt, Limit: usecase.MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := recorder.calls

			got, err := srv.List(ctx, tt.input)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Equal(t, before, recorder.calls, "the store is not queried")
		})
	}
}

func TestDiscoveryService_SignsStoredImages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	blobs := mockService.NewMockBlobStore(t)
	srv := NewDiscoveryService(DiscoveryServiceParams{
		Products:    f.products,
		Engagements: f.engagements,
		Sellers:     f.sellers,
		Blobs:       blobs,
		Logger:      f.logger,
	})

	f.seedProduct(t, &entity.Product{ID: "p1", Title: "Linen shirt", Price: 1, Image: entity.ImageRef("product_p1")})
	f.seedProduct(t, &entity.Product{ID: "p2", Title: "Wool shirt", Price: 1, Image: "https://cdn.example.com/wool.png"})

	blobs.EXPECT().SignedURL(mock.Anything, "product_p1").Return("https://storage.example.com/product_p1?sig=fresh", nil).Times(2)

	listed, err := srv.List(ctx, usecase.ListInput{})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "https://storage.example.com/product_p1?sig=fresh", listed[0].Image)
	assert.Equal(t, "https://cdn.example.com/wool.png", listed[1].Image)

	found, err := srv.Search(ctx, "shirt")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "https://storage.example.com/product_p1?sig=fresh", found[0].Image)

	stored, err := f.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.ImageRef("product_p1"), stored.Image)
}
