package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyLineItemID    = errors.New("line item id is required")
	ErrEmptyProductRef    = errors.New("line item product id is required")
	ErrInvalidQuantity    = errors.New("line item quantity must not be negative")
	ErrInvalidOrderNumber = errors.New("order number must not be negative")
)

// LineItem is one purchased product within an order.
type LineItem struct {
	ID        string
	Title     string
	Brand     string
	Price     float64
	Quantity  int
	ProductID string
}

// Order is the persisted commerce order snapshot shown on the dashboard.
type Order struct {
	ID                  string
	OrderNumber         int64
	CreatedAt           time.Time
	FinancialStatus     string
	FulfillmentStatus   string
	TotalShippingPrice  float64
	TotalTax            float64
	TotalLineItemsPrice float64
	TotalDiscounts      float64
	SubtotalPrice       float64
	TotalPrice          float64
	LineItems           []LineItem
}

// NewID returns a time-ordered identity, so lexical order follows creation order.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Validate enforces invariants on the aggregate. The id is assigned by the store
// when empty.
func (o *Order) Validate() error {
	if o.OrderNumber < 0 {
		return ErrInvalidOrderNumber
	}
	for _, item := range o.LineItems {
		if strings.TrimSpace(item.ID) == "" {
			return ErrEmptyLineItemID
		}
		if strings.TrimSpace(item.ProductID) == "" {
			return ErrEmptyProductRef
		}
		if item.Quantity < 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// ProductIDs lists the distinct product references in first-seen order.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.LineItems))
	ids := make([]string, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.LineItems = append([]LineItem(nil), o.LineItems...)
	return &clone
}
