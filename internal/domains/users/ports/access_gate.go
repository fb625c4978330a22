package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

// Denial reasons. Each is a distinct kind so it can be logged apart; HTTP
// callers see one generic "not authorized".
var (
	ErrNotAuthenticated      = apierrors.NewKindError(apierrors.KindNotAuthenticated, "no session identity")
	ErrUnknownUser           = apierrors.NewKindError(apierrors.KindUnknownUser, "session user does not exist")
	ErrInsufficientPrivilege = apierrors.NewKindError(apierrors.KindInsufficientPrivilege, "user does not have permissions")
)

// AccessGate decides whether a viewer may see the order list. A nil error
// allows; a nil identity means no session.
type AccessGate interface {
	Authorize(ctx context.Context, identity *domain.SessionIdentity) error
}
