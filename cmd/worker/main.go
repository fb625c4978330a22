package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-order-dashboard/internal/app/api"
	ordersobs "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	orderactivities "github.com/Apurer/go-gin-order-dashboard/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-order-dashboard/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/go-gin-order-dashboard/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-order-dashboard/internal/platform/temporal"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("ignoring .env: %v", err)
	}
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	const serviceName = "order-dashboard-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, api.ObservabilitySettings(cfg, serviceName))
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

	repos, cleanupRepos := api.BuildRepositories(ctx, cfg, logger)
	defer cleanupRepos()
	if !repos.Durable {
		logger.Warn("worker is reading in-memory repositories, the API will not route views here without postgres")
	}
	orderService := ordersobs.New(
		ordersapp.NewService(repos.Orders, repos.Products, nil),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	viewActivities := orderactivities.NewActivities(orderService)

	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
		Tracer:    instruments.Tracer("temporal-worker"),
	})
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderViewTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderViewWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderViewWorkflowName})
	w.RegisterActivityWithOptions(viewActivities.AssembleOrderView, activity.RegisterOptions{Name: orderactivities.AssembleOrderViewActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderViewTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
