package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/go-gin-order-dashboard/internal/durable/temporal/workflows/orders"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

var (
	_ ports.ViewAssembler = (*TemporalViewWorkflows)(nil)
	_ ports.ViewAssembler = (*InlineViewWorkflows)(nil)
)

// DefaultViewTimeout bounds one view workflow, so a missing worker fails the
// request instead of hanging it.
const DefaultViewTimeout = 30 * time.Second

// TemporalViewWorkflows assembles order views through a Temporal worker.
type TemporalViewWorkflows struct {
	client    client.Client
	taskQueue string
	timeout   time.Duration
}

type TemporalOption func(*TemporalViewWorkflows)

// WithViewTimeout overrides DefaultViewTimeout.
func WithViewTimeout(d time.Duration) TemporalOption {
	return func(o *TemporalViewWorkflows) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// NewTemporalViewWorkflows wires a Temporal client into the assembler.
func NewTemporalViewWorkflows(c client.Client, opts ...TemporalOption) *TemporalViewWorkflows {
	o := &TemporalViewWorkflows{client: c, taskQueue: orderworkflows.OrderViewTaskQueue, timeout: DefaultViewTimeout}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetView runs the order view workflow and waits for its result.
func (o *TemporalViewWorkflows) GetView(ctx context.Context, id string) (*types.OrderView, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:                       fmt.Sprintf("order-view-%s-%s", id, traceComponent),
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: o.timeout,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderViewWorkflowName,
		orderworkflows.OrderViewWorkflowInput{OrderID: id, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		// Same order within the same trace: wait on the run already in flight.
		run = o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
	}
	var view types.OrderView
	if err := run.Get(ctx, &view); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("order view workflow %s: no result within %s: %w", options.ID, o.timeout, err)
		}
		return nil, mapWorkflowError(err)
	}
	return &view, nil
}

// InlineViewWorkflows assembles views in-process, useful for tests or dev fallbacks.
type InlineViewWorkflows struct {
	service ports.ViewAssembler
}

// NewInlineViewWorkflows wraps the orders service for synchronous execution.
func NewInlineViewWorkflows(service ports.ViewAssembler) *InlineViewWorkflows {
	return &InlineViewWorkflows{service: service}
}

func (o *InlineViewWorkflows) GetView(ctx context.Context, id string) (*types.OrderView, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.GetView(ctx, id)
}

// mapWorkflowError restores the error kind carried across the workflow boundary
// as the application error type.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	var sentinel error
	switch apierrors.Kind(appErr.Type()) {
	case apierrors.KindValidation:
		sentinel = application.ErrInvalidOrderID
	case apierrors.KindNotFound:
		sentinel = ports.ErrNotFound
	case apierrors.KindMissingProductReference:
		sentinel = application.ErrMissingProductReference
	default:
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, appErr.Error())
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
