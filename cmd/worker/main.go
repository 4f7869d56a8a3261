package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	catalogmemory "github.com/pustakahq/bookstore-api/internal/domains/catalog/adapters/memory"
	ordersmemory "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/pustakahq/bookstore-api/internal/domains/orders/application"
	ordersports "github.com/pustakahq/bookstore-api/internal/domains/orders/ports"
	platformobservability "github.com/pustakahq/bookstore-api/internal/platform/observability"
	platformpostgres "github.com/pustakahq/bookstore-api/internal/platform/postgres"
	orderactivities "github.com/pustakahq/bookstore-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/pustakahq/bookstore-api/internal/platform/temporal/workflows/orders"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "bookstore-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.MaybeConnect(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanupDB()
	orderService := buildOrderService(db, instruments)
	orderActivities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderService(db *gorm.DB, instruments *platformobservability.Instruments) ordersports.Service {
	var core *ordersapp.Service
	if db != nil {
		repo := orderspostgres.NewRepository(db)
		core = ordersapp.NewService(repo, repo)
	} else {
		store := catalogmemory.NewStore()
		core = ordersapp.NewService(ordersmemory.NewRepository(store), store)
	}
	return ordersobs.New(
		core,
		ordersobs.WithLogger(instruments.Logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
