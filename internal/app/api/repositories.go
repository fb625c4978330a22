package api

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/ports"
	ordersmemory "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/memory"
	orderspostgres "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	usermemory "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/ports"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres"
)

// Repositories groups the storage adapters of every bounded context.
type Repositories struct {
	Orders   ordersports.Repository
	Products catalogports.Repository
	Users    userports.Repository
	// Durable is true when the repositories are backed by Postgres.
	Durable bool
}

// BuildRepositories connects to Postgres and migrates the schema, or falls back
// to in-memory repositories when the DSN is unset or unreachable.
func BuildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (Repositories, func()) {
	db, cleanup := platformpostgres.OpenOrFallback(ctx, cfg.PostgresOptions(logger))
	if db == nil {
		return memoryRepositories(), cleanup
	}
	if err := migrations.Run(db, cfg.OrderNotifyChannel); err != nil {
		logger.Warn("failed to migrate postgres schema, falling back to in-memory repositories", slog.String("error", err.Error()))
		cleanup()
		return memoryRepositories(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return postgresRepositories(db), cleanup
}

func memoryRepositories() Repositories {
	return Repositories{
		Orders:   ordersmemory.NewRepository(),
		Products: catalogmemory.NewRepository(),
		Users:    usermemory.NewRepository(),
	}
}

func postgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Orders:   orderspostgres.NewRepository(db),
		Products: catalogpostgres.NewRepository(db),
		Users:    userpostgres.NewRepository(db),
		Durable:  true,
	}
}
