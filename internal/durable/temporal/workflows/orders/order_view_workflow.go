package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-dashboard/internal/durable/temporal/sequences"
)

const (
	// OrderViewWorkflowName is the public identifier for registering and starting the workflow.
	OrderViewWorkflowName = "orders.workflows.AssembleView"
	// OrderViewTaskQueue is the queue consumed by the worker assembling order views.
	OrderViewTaskQueue = "ORDER_VIEWS"
)

// OrderViewWorkflowInput names the order whose view should be assembled.
type OrderViewWorkflowInput struct {
	OrderID string
	TraceID string
}

// OrderViewWorkflow assembles the display view of a changed order.
func OrderViewWorkflow(ctx workflow.Context, input OrderViewWorkflowInput) (*types.OrderView, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderViewWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	view, err := sequences.RunOrderViewSequence(ctx, input.OrderID)
	if err != nil {
		logger.Error("OrderViewWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderViewWorkflow completed", withTraceID(input.TraceID, "orderId", view.ID)...)
	return view, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
