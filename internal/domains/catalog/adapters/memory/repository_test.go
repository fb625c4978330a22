package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/domain"
)

func TestRepository_FindByIDsSkipsUnknownAndDuplicates(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	_, err := repo.Save(ctx, &domain.Product{ID: "p1", Images: []domain.Image{{Src: "a.jpg"}}})
	require.NoError(t, err)

	found, err := repo.FindByIDs(ctx, []string{"p1", "p1", "missing"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	found[0].Images[0].Src = "mutated"
	again, err := repo.FindByIDs(ctx, []string{"p1"})
	require.NoError(t, err)
	require.Equal(t, "a.jpg", again[0].Images[0].Src)
}

func TestRepository_SaveRejectsEmptyID(t *testing.T) {
	_, err := NewRepository().Save(context.Background(), &domain.Product{})
	require.ErrorIs(t, err, domain.ErrEmptyProductID)
}
