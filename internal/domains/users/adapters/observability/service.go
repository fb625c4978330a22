package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userdomain "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

const tracerName = "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/adapters/observability/gate"

// Gate decorates the access gate with tracing, logging, and metrics. Every
// decision is recorded with its reason.
type Gate struct {
	inner   userports.AccessGate
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics gateMetrics
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(g *Gate) { g.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(g *Gate) { g.metrics = newGateMetrics(m) }
}

// New wraps the core access gate.
func New(inner userports.AccessGate, opts ...Option) userports.AccessGate {
	g := &Gate{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newGateMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.tracer == nil {
		g.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if g.logger == nil {
		g.logger = defaultLogger()
	}
	return g
}

func (g *Gate) Authorize(ctx context.Context, identity *userdomain.SessionIdentity) error {
	userID := ""
	if identity != nil {
		userID = identity.UserID
	}
	ctx, span := g.tracer.Start(ctx, "AccessGate.Authorize", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	err := g.inner.Authorize(ctx, identity)
	if err == nil {
		g.metrics.record(ctx, "allow", "")
		g.logger.LogAttrs(ctx, slog.LevelInfo, "access granted", slog.String("user.id", userID))
		return nil
	}

	kind := apierrors.KindOf(err)
	span.SetAttributes(attribute.String("access.reason", kind.String()))
	if kind.IsAuthorization() {
		g.metrics.record(ctx, "deny", kind.String())
		g.logger.LogAttrs(ctx, slog.LevelWarn, "access denied",
			slog.String("user.id", userID), slog.String("reason", kind.String()))
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	g.metrics.record(ctx, "error", kind.String())
	g.logger.LogAttrs(ctx, slog.LevelError, "access check failed",
		slog.String("user.id", userID), slog.String("error", err.Error()))
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type gateMetrics struct {
	decisions metric.Int64Counter
}

func newGateMetrics(m metric.Meter) gateMetrics {
	if m == nil {
		return gateMetrics{}
	}
	decisions, _ := m.Int64Counter("users.access_gate.decisions", metric.WithDescription("Access gate decisions by outcome and reason"))
	return gateMetrics{decisions: decisions}
}

func (m gateMetrics) record(ctx context.Context, outcome, reason string) {
	if m.decisions == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if reason != "" {
		attrs = append(attrs, attribute.String("reason", reason))
	}
	m.decisions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

var _ userports.AccessGate = (*Gate)(nil)
