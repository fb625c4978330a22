package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

func TestRepository_ListRecentNewestFirstWithinLimit(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	var ids []string
	for i := 0; i < 5; i++ {
		saved, err := repo.Save(ctx, &domain.Order{OrderNumber: int64(1000 + i)})
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	list, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, ids[4], list[0].ID)
	require.Equal(t, ids[3], list[1].ID)
	require.Equal(t, ids[2], list[2].ID)
}

func TestRepository_GetByIDReturnsCopy(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, &domain.Order{ID: "o1", LineItems: []domain.LineItem{{ID: "li1", ProductID: "p1"}}})
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	loaded.LineItems[0].Title = "mutated"

	again, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	require.Empty(t, again.LineItems[0].Title)
}

func TestRepository_GetByIDMissing(t *testing.T) {
	_, err := NewRepository().GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SaveRejectsInvalid(t *testing.T) {
	_, err := NewRepository().Save(context.Background(), &domain.Order{LineItems: []domain.LineItem{{ProductID: "p1"}}})
	require.ErrorIs(t, err, domain.ErrEmptyLineItemID)
}

func TestRepository_KeepsExplicitIDs(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_, err := repo.Save(ctx, &domain.Order{ID: fmt.Sprintf("o%d", i)})
		require.NoError(t, err)
	}
	list, err := repo.ListRecent(ctx, 35)
	require.NoError(t, err)
	require.Equal(t, "o3", list[0].ID)
	require.Len(t, list, 3)
}
