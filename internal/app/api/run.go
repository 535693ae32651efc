package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	storefrontserver "github.com/xtremepizzaria/storefront/go"

	"github.com/xtremepizzaria/storefront/internal/app/storefront"
	catalogpostgres "github.com/xtremepizzaria/storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/xtremepizzaria/storefront/internal/domains/catalog/domain"
	"github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/notify"
	orderworkflows "github.com/xtremepizzaria/storefront/internal/domains/orders/adapters/workflows"
	orderports "github.com/xtremepizzaria/storefront/internal/domains/orders/ports"
	platformobservability "github.com/xtremepizzaria/storefront/internal/platform/observability"
	platformpostgres "github.com/xtremepizzaria/storefront/internal/platform/postgres"
	"github.com/xtremepizzaria/storefront/internal/platform/statestore"
)

const (
	serviceName     = "storefront-api"
	shutdownTimeout = 5 * time.Second
)

// Run boots the storefront HTTP API with observability, storage, notifications and the status scheduler wired.
// It returns once ctx is cancelled and the server has drained.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	opts := []storefront.Option{
		storefront.WithLogger(logger),
		storefront.WithInstruments(instruments),
	}

	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer closeDB()
	if db != nil {
		catalogRepo := catalogpostgres.NewRepository(db)
		if err := catalogRepo.Seed(ctx, catalogdomain.Menu()); err != nil {
			logger.Warn("failed to seed catalog, serving the static menu", slog.String("error", err.Error()))
		} else {
			opts = append(opts, storefront.WithCatalog(catalogRepo))
		}
		opts = append(opts, storefront.WithStore(statestore.NewPostgresStore(db)))
	}

	if cfg.RabbitMQURL != "" {
		notifier, err := notify.Dial(cfg.RabbitMQURL, serviceName)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, order events are not published", slog.String("error", err.Error()))
		} else {
			defer notifier.Close()
			opts = append(opts, storefront.WithNotifier(notifier))
			logger.Info("order events published", slog.String("exchange", notify.Exchange))
		}
	}

	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, order status runs on in-process timers", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		opts = append(opts, storefront.WithScheduler(func(advancer orderports.StatusAdvancer) (orderports.Scheduler, error) {
			scheduler := orderworkflows.NewTemporalScheduler(temporalClient, cfg.Storefront.StatusTimeUnit)
			if err := scheduler.StartWorker(advancer); err != nil {
				return nil, err
			}
			logger.Info("Temporal order status workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
			return scheduler, nil
		}))
	}

	state := storefront.Open(ctx, cfg.Storefront, opts...)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = state.Close(closeCtx)
	}()

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI: storefrontserver.NewCatalogAPI(state.Catalog),
		CartAPI:    storefrontserver.NewCartAPI(state.Cart),
		ProfileAPI: storefrontserver.NewProfileAPI(state.Profile),
		OrdersAPI:  storefrontserver.NewOrdersAPI(state.Orders),
		HealthAPI:  storefrontserver.NewHealthAPI(state.Health),
	}
	router := storefrontserver.NewRouterWithGinEngine(newEngine(cfg), handlers)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("storefront API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("storefront API shutdown failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("storefront API stopped")
	return nil
}

// newEngine installs the middleware every route shares; routes are registered afterwards.
func newEngine(cfg Config) *gin.Engine {
	if cfg.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName), cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	return engine
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Traceparent"}
	c.ExposeHeaders = []string{"Location"}
	c.MaxAge = 12 * time.Hour
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	for _, origin := range origins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
