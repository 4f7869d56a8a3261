package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	catalogmemory "github.com/pustakahq/bookstore-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/pustakahq/bookstore-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/pustakahq/bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/pustakahq/bookstore-api/internal/domains/catalog/application"
	catalogports "github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
	ordersmemory "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/pustakahq/bookstore-api/internal/domains/orders/application"
	ordersports "github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
	usersauth "github.com/pustakahq/bookstore-api/internal/domains/users/adapters/auth"
	usersmemory "github.com/pustakahq/bookstore-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/pustakahq/bookstore-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/pustakahq/bookstore-api/internal/domains/users/application"
	usersports "github.com/pustakahq/bookstore-api/internal/domains/users/ports"
	"github.com/pustakahq/bookstore-api/internal/platform/migrations"
	platformobservability "github.com/pustakahq/bookstore-api/internal/platform/observability"
	platformpostgres "github.com/pustakahq/bookstore-api/internal/platform/postgres"
	"github.com/pustakahq/bookstore-api/internal/server"
)

// Run boots the bookstore HTTP API with observability, repositories, and
// workflows wired. Without POSTGRES_DSN everything runs on the in-memory
// adapters so local development needs no infrastructure.
func Run(ctx context.Context) error {
	const serviceName = "bookstore-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.MaybeConnect(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	catalogService, ordersService, userRepo := buildServices(db, instruments)

	tokens, err := usersauth.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	userService := usersapp.NewService(userRepo, tokens)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(ordersService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	ready := func() bool { return true }
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			ready = func() bool {
				pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return sqlDB.PingContext(pingCtx) == nil
			}
		}
	}

	router := server.NewRouter(server.Dependencies{
		ServiceName: serviceName,
		Catalog:     catalogService,
		Users:       userService,
		Orders:      ordersService,
		Workflows:   orderWorkflows,
		Tokens:      tokens,
		Ready:       ready,
	})

	addr := ":" + cfg.Port
	logger.Info("bookstore API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("bookstore API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildServices(db *gorm.DB, instruments *platformobservability.Instruments) (catalogports.Service, ordersports.Service, usersports.Repository) {
	logger := instruments.Logger
	var (
		catalogCore *catalogapp.Service
		ordersCore  *ordersapp.Service
		userRepo    usersports.Repository
	)
	if db != nil {
		catalogCore = catalogapp.NewService(
			catalogpostgres.NewGenreRepository(db),
			catalogpostgres.NewBookRepository(db),
		)
		orderRepo := orderspostgres.NewRepository(db)
		ordersCore = ordersapp.NewService(orderRepo, orderRepo)
		userRepo = userspostgres.NewRepository(db)
	} else {
		store := catalogmemory.NewStore()
		catalogCore = catalogapp.NewService(store.GenreRepo(), store.BookRepo())
		ordersCore = ordersapp.NewService(ordersmemory.NewRepository(store), store)
		userRepo = usersmemory.NewRepository()
	}

	catalogService := catalogobs.New(
		catalogCore,
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	ordersService := ordersobs.New(
		ordersCore,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return catalogService, ordersService, userRepo
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
