// Package persistence selects the repository implementations for the configured store driver.
package persistence

import (
	"context"
	"log/slog"

	"himart/config"
	"himart/internal/domain/repository"
	"himart/internal/errors"
	fsstore "himart/internal/infra/persistence/firestore"
	"himart/internal/infra/persistence/postgres"

	"cloud.google.com/go/firestore"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params holds dependencies for the store, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the full set of repositories bound to one store.
type Repositories struct {
	fx.Out

	Users       repository.UserRepository
	Sessions    repository.SessionRepository
	Sellers     repository.SellerRepository
	Products    repository.ProductRepository
	Engagements repository.EngagementRepository
	Cart        repository.CartRepository
	TxManager   repository.TransactionManager
}

// New opens the store named by store.driver and builds its repositories.
func New(params Params) (Repositories, error) {
	driver := params.Config.Store.Driver
	params.Logger.Info("Opening document store", slog.String("driver", driver))

	switch driver {
	case config.StoreDriverFirestore, "":
		client, err := fsstore.NewClient(fsstore.Params{
			Lifecycle: params.Lc,
			Ctx:       params.Ctx,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return FirestoreRepositories(client), nil

	case config.StoreDriverPostgres:
		if params.Config.Postgres == nil {
			return Repositories{}, errors.New("postgres configuration is required for the postgres store")
		}

		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return GormRepositories(db), nil

	default:
		return Repositories{}, errors.Errorf("unknown store driver: %s", driver)
	}
}

// FirestoreRepositories binds every repository to a Firestore client.
func FirestoreRepositories(client *firestore.Client) Repositories {
	return Repositories{
		Users:       fsstore.NewUserRepository(client),
		Sessions:    fsstore.NewSessionRepository(client),
		Sellers:     fsstore.NewSellerRepository(client),
		Products:    fsstore.NewProductRepository(client),
		Engagements: fsstore.NewEngagementRepository(client),
		Cart:        fsstore.NewCartRepository(client),
		TxManager:   fsstore.NewTransactionManager(client),
	}
}

// GormRepositories binds every repository to a GORM database.
func GormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:       postgres.NewUserRepository(db),
		Sessions:    postgres.NewSessionRepository(db),
		Sellers:     postgres.NewSellerRepository(db),
		Products:    postgres.NewProductRepository(db),
		Engagements: postgres.NewEngagementRepository(db),
		Cart:        postgres.NewCartRepository(db),
		TxManager:   postgres.NewTransactionManager(db),
	}
}
