package persistence

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"himart/config"
	"himart/internal/domain/entity"
	"himart/internal/infra/persistence/postgres/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestGormRepositories(t *testing.T) {
	repos := GormRepositories(testdb.New(t))

	require.NotNil(t, repos.Users)
	require.NotNil(t, repos.TxManager)

	ctx := context.Background()
	require.NoError(t, repos.Cart.Save(ctx, "u1", &entity.CartItem{ProductID: "p1", Quantity: 1}))

	count, err := repos.Cart.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNew_RejectsBadConfiguration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "unknown driver", cfg: &config.Config{Store: config.StoreConfig{Driver: "mongo"}}},
		{name: "postgres without section", cfg: &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverPostgres}}},
		{name: "firestore without section", cfg: &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverFirestore}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Params{
				Lc:     fxtest.NewLifecycle(t),
				Ctx:    context.Background(),
				Config: tt.cfg,
				Logger: logger,
			})
			assert.Error(t, err)
		})
	}
}
