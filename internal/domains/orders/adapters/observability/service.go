package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListRecent(ctx context.Context) ([]*types.OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListRecent")
	defer span.End()

	views, err := s.inner.ListRecent(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list recent orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(views)))
	s.metrics.recordAssembled(ctx, "list", len(views))
	s.logInfo(ctx, "recent orders assembled", slog.Int("orders.count", len(views)))
	return views, nil
}

func (s *Service) GetView(ctx context.Context, id string) (*types.OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetView", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	view, err := s.inner.GetView(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to assemble order view", slog.String("order.id", id))
	}
	s.metrics.recordAssembled(ctx, "single", 1)
	s.logInfo(ctx, "order view assembled", slog.String("order.id", view.ID), slog.Int("line_items", len(view.LineItems)))
	return view, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
}

// handleError records the failure. Client-side kinds are logged at warn level;
// integrity violations carry the offending references.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	kind := apierrors.KindOf(err)
	attrs = append(attrs, slog.String("error.kind", kind.String()))
	level := slog.LevelError
	switch kind {
	case apierrors.KindValidation, apierrors.KindNotFound:
		level = slog.LevelWarn
	case apierrors.KindMissingProductReference:
		var missing *application.MissingProductReferenceError
		if errors.As(err, &missing) {
			attrs = append(attrs,
				slog.String("line_item.id", missing.LineItemID),
				slog.String("product.id", missing.ProductID))
		}
		s.metrics.recordIntegrityViolation(ctx)
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.kind", kind.String()))
	}
	s.logError(ctx, level, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	viewsAssembled      metric.Int64Counter
	integrityViolations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	viewsAssembled, _ := m.Int64Counter("orders.service.views_assembled", metric.WithDescription("Number of order views assembled"))
	integrityViolations, _ := m.Int64Counter("orders.service.integrity_violations", metric.WithDescription("Assemblies aborted by a missing product reference"))
	return serviceMetrics{viewsAssembled: viewsAssembled, integrityViolations: integrityViolations}
}

func (m serviceMetrics) recordAssembled(ctx context.Context, path string, n int) {
	if m.viewsAssembled != nil {
		m.viewsAssembled.Add(ctx, int64(n), metric.WithAttributes(attribute.String("path", path)))
	}
}

func (m serviceMetrics) recordIntegrityViolation(ctx context.Context) {
	if m.integrityViolations != nil {
		m.integrityViolations.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
