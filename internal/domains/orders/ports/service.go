package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
)

// ViewAssembler builds the display view of a single order.
type ViewAssembler interface {
	GetView(ctx context.Context, id string) (*types.OrderView, error)
}

// Service exposes order dashboard use cases to adapters.
type Service interface {
	ViewAssembler
	ListRecent(ctx context.Context) ([]*types.OrderView, error)
}
