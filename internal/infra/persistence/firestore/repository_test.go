package firestore

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEmulatorClient connects to the emulator under a fresh project so every test starts empty.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST is not set")
	}

	projectID := "himart-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	client, err := firestore.NewClient(context.Background(), projectID)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func newUser(id, email string) *entity.User {
	return &entity.User{
		ID:        id,
		Email:     email,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "hash",
		JoinedOn:  time.Now().UTC().Truncate(time.Second),
		Addresses: []entity.Address{{Street: "1 Main St", City: "Springfield", Country: "US", Default: true}},
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newEmulatorClient(t))

	require.NoError(t, repo.Create(ctx, newUser("u1", "ada@example.com")))
	require.NoError(t, repo.Create(ctx, newUser("u2", "grace@example.com")))

	got, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "hash", got.Password)
	require.Len(t, got.Addresses, 1)
	assert.True(t, got.Addresses[0].Default)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	t.Run("duplicate id", func(t *testing.T) {
		err := repo.Create(ctx, newUser("u1", "other@example.com"))
		assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
	})

	t.Run("update links provider", func(t *testing.T) {
		got.GoogleID = "g-123"
		got.EmailVerified = true
		require.NoError(t, repo.Update(ctx, got))

		reloaded, err := repo.FindByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "g-123", reloaded.GoogleID)
		assert.True(t, reloaded.EmailVerified)
	})

	t.Run("update missing user", func(t *testing.T) {
		err := repo.Update(ctx, newUser("ghost", "ghost@example.com"))
		assert.ErrorIs(t, err, repository.ErrUserNotFound)

		_, err = repo.FindByID(ctx, "ghost")
		assert.ErrorIs(t, err, repository.ErrUserNotFound, "no document is created")
	})
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newEmulatorClient(t))

	now := time.Now().UTC().Truncate(time.Second)
	session := &entity.Session{
		ID:     "s1",
		UserID: "u1",
		DeviceInfo: entity.DeviceInfo{
			IP:        "8.8.8.8",
			UserAgent: "test-agent",
			Location:  entity.GeoLocation{Status: "success", City: "Ashburn", Coordinates: orb.Point{-77.5, 39}},
		},
		Provider:  entity.ProviderGoogle,
		CreatedAt: now,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, entity.ProviderGoogle, got.Provider)
	assert.Equal(t, "Ashburn", got.DeviceInfo.Location.City)
	assert.Equal(t, orb.Point{-77.5, 39}, got.DeviceInfo.Location.Coordinates)
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.FindByID(ctx, "s1")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	assert.NoError(t, repo.Delete(ctx, "s1"), "delete is idempotent")
}

func TestSellerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSellerRepository(newEmulatorClient(t))

	_, err := repo.FindByID(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrSellerNotFound)

	seller := &entity.Seller{ID: "u1", BusinessName: "Acme", TaxID: "T-1", AuthorID: "u1", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, seller))

	got, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "Acme", got.BusinessName)

	assert.ErrorIs(t, repo.Create(ctx, seller), repository.ErrSellerAlreadyExists)
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	client := newEmulatorClient(t)
	repo := NewProductRepository(client)

	for _, p := range []*entity.Product{
		{ID: "p1", Title: "Shirt", Price: 10, Category: "apparel", SellerID: "s1", Keywords: []string{"cotton"}, CreatedAt: time.Now().UTC()},
		{ID: "p2", Title: "Mug", Price: 5, Category: "kitchen", SellerID: "s1", CreatedAt: time.Now().UTC()},
		{ID: "p3", Title: "Hat", Price: 8, Category: "apparel", SellerID: "s2", CreatedAt: time.Now().UTC()},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	tests := []struct {
		name   string
		filter repository.ProductFilter
		want   []string
	}{
		{name: "all", filter: repository.ProductFilter{}, want: []string{"p1", "p2", "p3"}},
		{name: "category", filter: repository.ProductFilter{Category: "apparel"}, want: []string{"p1", "p3"}},
		{name: "category then offset", filter: repository.ProductFilter{Category: "apparel", Offset: 1, Limit: 10}, want: []string{"p3"}},
		{name: "limit", filter: repository.ProductFilter{Limit: 2}, want: []string{"p1", "p2"}},
		{name: "seller", filter: repository.ProductFilter{SellerID: "s1"}, want: []string{"p1", "p2"}},
		{name: "unknown category", filter: repository.ProductFilter{Category: "toys"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("epoch millis createdAt", func(t *testing.T) {
		created := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)
		_, err := client.Collection(productsCollection).Doc("legacy").Set(ctx, map[string]any{
			"title":     "Old lamp",
			"price":     12.5,
			"createdAt": created.UnixMilli(),
		})
		require.NoError(t, err)

		p, err := repo.FindByID(ctx, "legacy")
		require.NoError(t, err)
		assert.Equal(t, "Old lamp", p.Title)
		assert.True(t, p.CreatedAt.Equal(created))
	})

	t.Run("update and delete", func(t *testing.T) {
		p, err := repo.FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, []string{"cotton"}, p.Keywords)

		p.DiscountPrice = 7
		require.NoError(t, repo.Update(ctx, p))

		p, err = repo.FindByID(ctx, "p1")
		require.NoError(t, err)
		assert.InDelta(t, 7.0, p.DiscountPrice, 0.001)

		require.NoError(t, repo.Delete(ctx, "p1"))
		_, err = repo.FindByID(ctx, "p1")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "p1"), repository.ErrProductNotFound)
	})
}

func TestEngagementRepository(t *testing.T) {
	ctx := context.Background()
	client := newEmulatorClient(t)
	repo := NewEngagementRepository(client)

	record := func(kind entity.EngagementKind, productID, userID string, rating int) {
		require.NoError(t, repo.Record(ctx, &entity.Engagement{
			Kind: kind, ProductID: productID, UserID: userID, Rating: rating, Timestamp: time.Now().UTC(),
		}))
	}

	record(entity.EngagementClick, "p1", "u1", 0)
	record(entity.EngagementClick, "p1", "u1", 0)
	record(entity.EngagementClick, "p1", "u2", 0)
	record(entity.EngagementImpression, "p1", "u1", 0)
	record(entity.EngagementRating, "p1", "u1", 3)
	record(entity.EngagementRating, "p1", "u1", 5)
	record(entity.EngagementClick, "p2", "u1", 0)

	clicks, err := repo.Count(ctx, entity.EngagementClick, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), clicks, "one record per user")

	ratings, err := repo.Count(ctx, entity.EngagementRating, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ratings)

	snap, err := client.Collection(productsCollection).Doc("p1").Collection(string(entity.EngagementRating)).Doc("u1").Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, snap.Data()["rating"], "a re-rate overwrites the score")

	exists, err := repo.Exists(ctx, entity.EngagementImpression, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, entity.EngagementSold, "p1", "u1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.DeleteAll(ctx, "p1"))
	for _, kind := range entity.EngagementKinds {
		count, err := repo.Count(ctx, kind, "p1")
		require.NoError(t, err)
		assert.Zero(t, count, kind.String())
	}

	others, err := repo.Count(ctx, entity.EngagementClick, "p2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), others)
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(newEmulatorClient(t))

	_, err := repo.Find(ctx, "u1", "p1")
	assert.ErrorIs(t, err, repository.ErrCartItemNotFound)

	require.NoError(t, repo.Save(ctx, "u1", &entity.CartItem{ProductID: "p1", Quantity: 2}))
	require.NoError(t, repo.Save(ctx, "u1", &entity.CartItem{ProductID: "p1", Quantity: 5}))
	require.NoError(t, repo.Save(ctx, "u1", &entity.CartItem{ProductID: "p2", Quantity: 1}))
	require.NoError(t, repo.Save(ctx, "u2", &entity.CartItem{ProductID: "p1", Quantity: 9}))

	item, err := repo.Find(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	items, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	count, err := repo.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Delete(ctx, "u1", "p2"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1", "p2"), repository.ErrCartItemNotFound)
}

func TestTransactionManager(t *testing.T) {
	ctx := context.Background()
	client := newEmulatorClient(t)
	tm := NewTransactionManager(client)
	users := NewUserRepository(client)
	sellers := NewSellerRepository(client)

	t.Run("an error discards the writes", func(t *testing.T) {
		errBoom := errors.New("boom")
		err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			if err := f.UserRepo().Create(ctx, newUser("u1", "a@example.com")); err != nil {
				return err
			}

			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)

		_, err = users.FindByID(ctx, "u1")
		assert.ErrorIs(t, err, repository.ErrUserNotFound, "rolled back")
	})

	t.Run("reads first then writes", func(t *testing.T) {
		require.NoError(t, users.Create(ctx, newUser("u2", "b@example.com")))

		err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			if _, err := f.SellerRepo().FindByID(ctx, "u2"); !errors.Is(err, repository.ErrSellerNotFound) {
				return errors.Errorf("unexpected seller lookup result: %v", err)
			}
			user, err := f.UserRepo().FindByID(ctx, "u2")
			if err != nil {
				return err
			}

			user.IsSeller = true
			if err := f.UserRepo().Update(ctx, user); err != nil {
				return err
			}

			return f.SellerRepo().Create(ctx, &entity.Seller{ID: "u2", BusinessName: "Acme", AuthorID: "u2", CreatedAt: time.Now().UTC()})
		})
		require.NoError(t, err)

		user, err := users.FindByID(ctx, "u2")
		require.NoError(t, err)
		assert.True(t, user.IsSeller)

		_, err = sellers.FindByID(ctx, "u2")
		assert.NoError(t, err)
	})

	t.Run("a read after a write is rejected", func(t *testing.T) {
		err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			if err := f.UserRepo().Create(ctx, newUser("u3", "c@example.com")); err != nil {
				return err
			}
			_, err := f.UserRepo().FindByID(ctx, "u3")

			return err
		})
		require.Error(t, err)

		_, err = users.FindByID(ctx, "u3")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}
