package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/users/ports"
)

// Gate admits resolved admin users only.
type Gate struct {
	repo ports.Repository
}

func NewGate(repo ports.Repository) *Gate {
	return &Gate{repo: repo}
}

func (g *Gate) Authorize(ctx context.Context, identity *domain.SessionIdentity) error {
	if identity == nil || strings.TrimSpace(identity.UserID) == "" {
		return ports.ErrNotAuthenticated
	}
	user, err := g.repo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("%w: %w", ports.ErrUnknownUser, err)
		}
		return err
	}
	if !user.IsAdmin {
		return ports.ErrInsufficientPrivilege
	}
	return nil
}

var _ ports.AccessGate = (*Gate)(nil)
