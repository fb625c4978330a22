package application

import (
	"context"
	"fmt"
	"strings"

	catalogdomain "github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

// RecentOrdersLimit is the size of the dashboard's most-recent window.
const RecentOrdersLimit = 35

// Service orchestrates order view use cases.
type Service struct {
	orders     ports.Repository
	products   catalogports.Repository
	aggregator *Aggregator
}

func NewService(orders ports.Repository, products catalogports.Repository, aggregator *Aggregator) *Service {
	if aggregator == nil {
		aggregator = NewAggregator()
	}
	return &Service{orders: orders, products: products, aggregator: aggregator}
}

// ListRecent assembles the newest orders. Products for the whole window are
// fetched in one batch.
func (s *Service) ListRecent(ctx context.Context) ([]*types.OrderView, error) {
	orders, err := s.orders.ListRecent(ctx, RecentOrdersLimit)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var ids []string
	for _, order := range orders {
		for _, id := range order.ProductIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	products, err := s.findProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]*types.OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := s.aggregator.Assemble(order, products)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// GetView loads one order and its products and assembles the view.
func (s *Service) GetView(ctx context.Context, id string) (*types.OrderView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	products, err := s.findProducts(ctx, order.ProductIDs())
	if err != nil {
		return nil, err
	}
	return s.aggregator.Assemble(order, products)
}

func (s *Service) findProducts(ctx context.Context, ids []string) ([]*catalogdomain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return products, nil
}

var _ ports.Service = (*Service)(nil)
