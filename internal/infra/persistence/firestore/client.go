// Package firestore implements the repositories on Cloud Firestore, using the collection layout
// users/{id}, sessions/{id}, sellers/{userId}, products/{id} (with one sub-collection per
// engagement kind) and users/{uid}/cart/{productId}.
package firestore

import (
	"context"
	"log/slog"

	"himart/config"
	"himart/internal/errors"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

const (
	usersCollection    = "users"
	sessionsCollection = "sessions"
	sellersCollection  = "sellers"
	productsCollection = "products"
	cartCollection     = "cart"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewClient bootstraps the Firebase app and returns its Firestore client.
// Without a credentials path the client falls back to application default credentials.
func NewClient(params Params) (*firestore.Client, error) {
	cfg := params.Config.Firebase
	if cfg == nil {
		return nil, errors.New("firebase configuration is required for the firestore store")
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Firestore(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get firestore client")
	}

	params.Logger.Info("Firestore client initialized", slog.String("project_id", cfg.ProjectID))

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(client.Close())
		},
	})

	return client, nil
}
