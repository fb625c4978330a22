package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

var ErrNotFound = apierrors.NewKindError(apierrors.KindNotFound, "order not found")

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// ListRecent returns at most limit orders, newest identity first.
	ListRecent(ctx context.Context, limit int) ([]*domain.Order, error)
}
