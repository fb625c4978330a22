//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	orderspostgres "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/migrations"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres/pgtest"
)

func TestListen_DeliversTriggerNotifications(t *testing.T) {
	pg := pgtest.Start(t)
	repo := orderspostgres.NewRepository(pg.DB)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- postgres.Listen(ctx, pg.DSN, migrations.DefaultOrderNotifyChannel, nil, func(ctx context.Context, payload string) {
			select {
			case payloads <- payload:
			case <-ctx.Done():
			}
		})
	}()

	// LISTEN is registered asynchronously; every save re-fires the trigger until
	// one lands after it.
	order := &domain.Order{ID: "o-listen", OrderNumber: 42, CreatedAt: time.Now().UTC(), LineItems: []domain.LineItem{}}
	var got string
	require.Eventually(t, func() bool {
		if _, err := repo.Save(context.Background(), order); err != nil {
			t.Logf("save: %v", err)
			return false
		}
		select {
		case got = <-payloads:
			return true
		case <-time.After(200 * time.Millisecond):
			return false
		}
	}, 10*time.Second, 10*time.Millisecond)
	require.Equal(t, "o-listen", got)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}
}

func TestOpen_SizesPool(t *testing.T) {
	pg := pgtest.Start(t)

	db, err := postgres.Open(context.Background(), postgres.Options{DSN: pg.DSN, MaxOpenConns: 3})
	require.NoError(t, err)
	defer postgres.Close(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.Equal(t, 3, sqlDB.Stats().MaxOpenConnections)
}
