package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/domain"
)

// Repository reads and stores product reference data.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// FindByIDs returns the products whose identity is in ids. Unknown ids are
	// skipped; callers decide whether a gap is an error.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
}
