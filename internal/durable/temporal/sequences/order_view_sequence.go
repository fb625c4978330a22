package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/Apurer/go-gin-order-dashboard/internal/durable/temporal/activities/orders"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
)

// RunOrderViewSequence assembles one order view. Persistence hiccups are retried;
// classified failures are not.
func RunOrderViewSequence(ctx workflow.Context, orderID string) (*types.OrderView, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order view sequence started", "orderId", orderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var view types.OrderView
	err := workflow.ExecuteActivity(ctx, orderactivities.AssembleOrderViewActivityName, orderactivities.ViewInput{OrderID: orderID}).Get(ctx, &view)
	if err != nil {
		logger.Error("order view sequence failed", "orderId", orderID, "error", err)
		return nil, err
	}
	logger.Info("order view sequence completed", "orderId", view.ID)
	return &view, nil
}
