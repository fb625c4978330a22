//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres/pgtest"
)

func TestRepository_FindByIDsKeepsImageOrder(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	product, err := domain.NewProduct("p1",
		domain.Image{Src: "a.jpg", SrcWebp: "a.webp", Width: 100, Height: 100, Alt: "shoe"},
		domain.Image{Src: "b.jpg"},
	)
	require.NoError(t, err)
	_, err = repo.Save(ctx, product)
	require.NoError(t, err)

	found, err := repo.FindByIDs(ctx, []string{"p1", "unknown"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, product.Images, found[0].Images)
}

func TestRepository_SaveReplacesImages(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.Product{ID: "p1", Images: []domain.Image{{Src: "old.jpg"}}})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &domain.Product{ID: "p1"})
	require.NoError(t, err)

	found, err := repo.FindByIDs(ctx, []string{"p1"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Empty(t, found[0].Images)
}

func TestRepository_FindByIDsEmpty(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)

	found, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, found)
}
