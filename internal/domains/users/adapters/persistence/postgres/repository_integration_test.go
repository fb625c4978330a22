//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/users/ports"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres/pgtest"
)

func TestRepository_SaveAndGetByID(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	user, err := domain.NewUser("admin", true)
	require.NoError(t, err)
	_, err = repo.Save(ctx, user)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, fetched.IsAdmin)
}

func TestRepository_SaveRevokesAdmin(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.User{ID: "u1", IsAdmin: true})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &domain.User{ID: "u1", IsAdmin: false})
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, fetched.IsAdmin)
}

func TestRepository_GetByIDMissing(t *testing.T) {
	repo := NewRepository(pgtest.Start(t).DB)

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
