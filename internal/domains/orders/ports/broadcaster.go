package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
)

// Broadcaster pushes an assembled view to the viewers connected right now.
type Broadcaster interface {
	PublishOrderView(ctx context.Context, view *types.OrderView) error
}
