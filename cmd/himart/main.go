package main

import (
	"context"
	"log/slog"
	"os"

	"himart/config"
	"himart/internal/delivery"
	deliverymiddleware "himart/internal/delivery/middleware"
	"himart/internal/delivery/http"
	"himart/internal/delivery/http/cookie"
	"himart/internal/delivery/http/middleware"
	"himart/internal/delivery/http/router/handler"
	"himart/internal/infra/auth"
	"himart/internal/infra/auth/facebook"
	"himart/internal/infra/auth/google"
	"himart/internal/infra/blob"
	"himart/internal/infra/geo"
	logs "himart/internal/infra/log"
	"himart/internal/infra/persistence"
	"himart/internal/infra/pubsub"
	"himart/internal/infra/qrcode"
	"himart/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			blob.NewStore,
			geo.NewLocator,
		),
		pubsub.Module,
	)
}

// injectRepo binds every repository to the store selected by store.driver.
func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.New,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewAuthenticator,
			facebook.NewGraphClient,
			qrcode.NewQRCodeServiceFromConfig,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewAuthService,
			impl.NewProductService,
			impl.NewDiscoveryService,
			impl.NewCartService,
			impl.NewSellerService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			cookie.NewJar,
			deliverymiddleware.NewRequestIDMiddleware,
			deliverymiddleware.NewLoggerMiddleware,
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			newMetricsMiddleware,
		),
	)
}

// newMetricsMiddleware registers the HTTP collectors next to the Go runtime ones.
func newMetricsMiddleware(cfg *config.Config) *middleware.MetricsMiddleware {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return middleware.NewMetricsMiddleware(reg, cfg.Env.ServiceName)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProductHandler,
			handler.NewDiscoveryHandler,
			handler.NewCartHandler,
			handler.NewSellerHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
