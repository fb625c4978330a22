package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	dashboardserver "github.com/Apurer/go-gin-order-dashboard/go"

	ordersobs "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	usersobs "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/application"
	platformobservability "github.com/Apurer/go-gin-order-dashboard/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/views"
	"github.com/Apurer/go-gin-order-dashboard/internal/realtime"
	"github.com/Apurer/go-gin-order-dashboard/internal/realtime/bus"
)

const (
	serviceName     = "order-dashboard-api"
	shutdownTimeout = 10 * time.Second
)

// Run boots the dashboard HTTP API and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, ObservabilitySettings(cfg, serviceName))
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

	codec, err := cfg.NewSessionCodec()
	if err != nil {
		return err
	}
	renderer, err := views.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	repos, cleanupRepos := BuildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	orderService := ordersobs.New(
		ordersapp.NewService(repos.Orders, repos.Products, nil),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	gate := usersobs.New(
		userapp.NewGate(repos.Users),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	hub := realtime.NewHub(
		realtime.WithLogger(logger),
		realtime.WithMeter(instruments.Meter("internal.realtime")),
	)
	var publisher realtime.Publisher = hub
	if cfg.RedisAddr != "" {
		redisBus, err := connectBus(ctx, cfg, logger, hub)
		if err != nil {
			logger.Warn("redis fan-out unavailable, delivering to local viewers only", slog.String("error", err.Error()))
		} else {
			defer redisBus.Close()
			publisher = redisBus
		}
	}

	assembler, closeAssembler := ViewAssembler(cfg, repos, orderService, logger, instruments.Tracer("temporal-client"))
	defer closeAssembler()

	notifiers := NewOrderNotifiers(assembler, publisher, hub, logger)
	if repos.Durable && !cfg.OrderListenerDisabled {
		go listenForOrderChanges(ctx, cfg, logger, notifiers.Listener)
	}

	handlers := dashboardserver.ApiHandleFunctions{
		OrdersAPI:   dashboardserver.NewOrdersAPI(orderService, notifiers.HTTP, gate, renderer),
		RealtimeAPI: dashboardserver.NewRealtimeAPI(hub, realtime.NewChatRelay(publisher)),
	}
	router := dashboardserver.NewRouter(handlers,
		otelgin.Middleware(serviceName),
		dashboardserver.SessionMiddleware(codec, logger),
	)

	// Streams hang off streamCtx so shutdown can end them instead of waiting out
	// the timeout.
	streamCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return streamCtx },
	}
	server.RegisterOnShutdown(cancelStreams)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("order dashboard listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("order dashboard server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down order dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// ObservabilitySettings projects the config onto observability settings.
func ObservabilitySettings(cfg Config, service string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  service,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		LogFormat:    cfg.LogFormat,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	}
}

func connectBus(ctx context.Context, cfg Config, logger *slog.Logger, hub *realtime.Hub) (bus.Bus, error) {
	redisBus, err := bus.NewRedisBus(ctx, cfg.RedisAddr, cfg.RedisChannel, logger)
	if err != nil {
		return nil, err
	}
	if err := redisBus.StartForwarder(ctx, hub.Deliver); err != nil {
		_ = redisBus.Close()
		return nil, err
	}
	logger.Info("realtime fan-out via redis", slog.String("channel", cfg.RedisChannel))
	return redisBus, nil
}

func listenForOrderChanges(ctx context.Context, cfg Config, logger *slog.Logger, notifier *ordersapp.Notifier) {
	err := platformpostgres.Listen(ctx, cfg.PostgresDSN, cfg.OrderNotifyChannel, logger, func(ctx context.Context, orderID string) {
		if _, err := notifier.OrderChanged(ctx, orderID); err != nil {
			logger.Warn("order notification not broadcast", slog.String("order.id", orderID), slog.String("error", err.Error()))
		}
	})
	if err != nil {
		logger.Error("order change listener stopped", slog.String("error", err.Error()))
	}
}
