package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product catalog.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	clone := product.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) FindByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(ids))
	list := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.products[id]; ok {
			list = append(list, product.Clone())
		}
	}
	return list, nil
}

// Reset drops every stored product.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[string]*domain.Product{}
}
