package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	ordersports "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

// AssembleOrderViewActivityName loads an order with its products and assembles the view.
const AssembleOrderViewActivityName = "orders.activities.AssembleView"

// ViewInput identifies the order to assemble.
type ViewInput struct {
	OrderID string
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	views ordersports.ViewAssembler
}

func NewActivities(views ordersports.ViewAssembler) *Activities {
	return &Activities{views: views}
}

// AssembleOrderView builds the display view of one order. Classified failures are
// returned as non-retryable application errors typed by their kind.
func (a *Activities) AssembleOrderView(ctx context.Context, input ViewInput) (*types.OrderView, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.views == nil {
		logger.Error("order view activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("order view activity not initialized")
	}
	logger.Info("AssembleOrderView activity started", "orderId", input.OrderID)
	view, err := a.views.GetView(ctx, input.OrderID)
	if err != nil {
		logger.Error("AssembleOrderView activity failed", "orderId", input.OrderID, "error", err)
		if kind := apierrors.KindOf(err); kind != apierrors.KindUnclassified {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), kind.String(), err)
		}
		return nil, err
	}
	logger.Info("AssembleOrderView activity completed", "orderId", view.ID, "lineItems", len(view.LineItems))
	return view, nil
}
