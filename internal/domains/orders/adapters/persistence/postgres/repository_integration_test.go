//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres/pgtest"
)

func TestRepository_SaveAndGetByID(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	created := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	order := &domain.Order{
		ID:              "o1",
		OrderNumber:     1001,
		CreatedAt:       created,
		FinancialStatus: "paid",
		TotalPrice:      20,
		LineItems:       []domain.LineItem{{ID: "li1", Title: "Runner", Brand: "Acme", Price: 10, Quantity: 2, ProductID: "p1"}},
	}
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), fetched.OrderNumber)
	assert.Equal(t, "paid", fetched.FinancialStatus)
	assert.True(t, created.Equal(fetched.CreatedAt))
	assert.Equal(t, order.LineItems, fetched.LineItems)
}

func TestRepository_SaveUpdatesExisting(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	order := &domain.Order{ID: "o1", FulfillmentStatus: "unfulfilled"}
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	order.FulfillmentStatus = "fulfilled"
	_, err = repo.Save(ctx, order)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "fulfilled", fetched.FulfillmentStatus)
}

func TestRepository_ListRecentNewestFirst(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		saved, err := repo.Save(ctx, &domain.Order{OrderNumber: int64(i)})
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	list, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[3], list[0].ID)
	assert.Equal(t, ids[2], list[1].ID)
}

func TestRepository_GetByIDMissing(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
