package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"himart/config"
	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/domain/service"
	"himart/internal/infra/auth"
	"himart/internal/infra/persistence/postgres"
	"himart/internal/infra/persistence/postgres/testdb"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Session = "test-secret"
	cfg.Auth = &config.AuthConfig{
		BcryptCost: bcrypt.MinCost,
		TokenTTL:   time.Hour,
		SessionTTL: 24 * time.Hour,
	}

	return cfg
}

// fixture bundles SQLite-backed repositories with real token and hashing services.
type fixture struct {
	db          *gorm.DB
	users       repository.UserRepository
	sessions    repository.SessionRepository
	sellers     repository.SellerRepository
	products    repository.ProductRepository
	engagements repository.EngagementRepository
	cart        repository.CartRepository
	txManager   repository.TransactionManager
	tokens      service.TokenService
	hasher      service.PasswordHasher
	cfg         *config.Config
	logger      *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.New(t)
	cfg := newTestConfig()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return &fixture{
		db:          db,
		users:       postgres.NewUserRepository(db),
		sessions:    postgres.NewSessionRepository(db),
		sellers:     postgres.NewSellerRepository(db),
		products:    postgres.NewProductRepository(db),
		engagements: postgres.NewEngagementRepository(db),
		cart:        postgres.NewCartRepository(db),
		txManager:   postgres.NewTransactionManager(db),
		tokens:      tokens,
		hasher:      auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		cfg:         cfg,
		logger:      newDiscardLogger(),
	}
}

func (f *fixture) seedUser(t *testing.T, id, email string) *entity.User {
	t.Helper()

	user := &entity.User{
		ID:       id,
		Email:    email,
		JoinedOn: time.Now().UTC(),
	}
	require.NoError(t, f.users.Create(context.Background(), user))

	return user
}

func (f *fixture) seedProduct(t *testing.T, product *entity.Product) *entity.Product {
	t.Helper()

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	require.NoError(t, f.products.Create(context.Background(), product))

	return product
}

func (f *fixture) seedEngagement(t *testing.T, kind entity.EngagementKind, productID, userID string) {
	t.Helper()

	require.NoError(t, f.engagements.Record(context.Background(), &entity.Engagement{
		Kind:      kind,
		ProductID: productID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}))
}
