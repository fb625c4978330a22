package api

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	ordersrealtime "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/realtime"
	ordersworkflows "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	platformtemporal "github.com/Apurer/go-gin-order-dashboard/internal/platform/temporal"
	"github.com/Apurer/go-gin-order-dashboard/internal/realtime"
)

// OrderNotifiers are the two entry points of "order changed" signals.
type OrderNotifiers struct {
	// HTTP serves POST /orders and publishes through the cross-replica bus.
	HTTP *ordersapp.Notifier
	// Listener serves Postgres NOTIFY. Every replica receives the NOTIFY, so it
	// publishes to the local hub only.
	Listener *ordersapp.Notifier
}

func NewOrderNotifiers(assembler ordersports.ViewAssembler, publisher realtime.Publisher, hub *realtime.Hub, logger *slog.Logger) OrderNotifiers {
	return OrderNotifiers{
		HTTP:     ordersapp.NewNotifier(assembler, ordersrealtime.NewBroadcaster(publisher), logger),
		Listener: ordersapp.NewNotifier(assembler, ordersrealtime.NewBroadcaster(hub), logger),
	}
}

// ViewAssembler returns the Temporal-backed assembler when a worker can see the
// same data as the API, and the inline one otherwise. The returned func releases
// the Temporal client.
func ViewAssembler(cfg Config, repos Repositories, inline ordersports.ViewAssembler, logger *slog.Logger, tracer trace.Tracer) (ordersports.ViewAssembler, func()) {
	fallback := ordersworkflows.NewInlineViewWorkflows(inline)
	if cfg.TemporalDisabled {
		return fallback, func() {}
	}
	if !repos.Durable {
		logger.Info("in-memory repositories are not shared with the Temporal worker, assembling order views inline")
		return fallback, func() {}
	}
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
		Tracer:    tracer,
	})
	if err != nil {
		logger.Warn("Temporal workflows unavailable, assembling order views inline", slog.String("error", err.Error()))
		return fallback, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return ordersworkflows.NewTemporalViewWorkflows(temporalClient), temporalClient.Close
}
