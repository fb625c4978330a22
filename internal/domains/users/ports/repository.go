package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
