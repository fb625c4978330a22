package application

import (
	"fmt"

	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

var (
	// ErrInvalidOrderID signals a missing or blank order identity.
	ErrInvalidOrderID = apierrors.NewKindError(apierrors.KindValidation, "order id is required")
	// ErrMissingProductReference matches every MissingProductReferenceError.
	ErrMissingProductReference = apierrors.NewKindError(apierrors.KindMissingProductReference, "missing product reference")
)

// MissingProductReferenceError reports a line item whose product was not in the
// supplied product set.
type MissingProductReferenceError struct {
	OrderID    string
	LineItemID string
	ProductID  string
}

func (e *MissingProductReferenceError) Error() string {
	return fmt.Sprintf("order %q line item %q references missing product %q", e.OrderID, e.LineItemID, e.ProductID)
}

func (e *MissingProductReferenceError) ErrorKind() apierrors.Kind {
	return apierrors.KindMissingProductReference
}

func (e *MissingProductReferenceError) Is(target error) bool {
	return target == ErrMissingProductReference
}
