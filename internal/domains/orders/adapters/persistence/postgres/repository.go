package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID                  string           `gorm:"primaryKey;column:id;size:64"`
	OrderNumber         int64            `gorm:"column:order_number"`
	FinancialStatus     string           `gorm:"column:financial_status"`
	FulfillmentStatus   string           `gorm:"column:fulfillment_status"`
	TotalShippingPrice  float64          `gorm:"column:total_shipping_price"`
	TotalTax            float64          `gorm:"column:total_tax"`
	TotalLineItemsPrice float64          `gorm:"column:total_line_items_price"`
	TotalDiscounts      float64          `gorm:"column:total_discounts"`
	SubtotalPrice       float64          `gorm:"column:subtotal_price"`
	TotalPrice          float64          `gorm:"column:total_price"`
	LineItems           []lineItemRecord `gorm:"column:line_items;type:jsonb;serializer:json"`
	CreatedAt           time.Time        `gorm:"column:created_at"`
	UpdatedAt           time.Time        `gorm:"column:updated_at"`
}

type lineItemRecord struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ProductID string  `json:"productId"`
}

func (orderRecord) TableName() string { return "orders" }

// Save upserts the order. Every insert or update fires the order-change trigger.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	if record.ID == "" {
		id, err := domain.NewID()
		if err != nil {
			return nil, err
		}
		record.ID = id
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_number", "financial_status", "fulfillment_status",
				"total_shipping_price", "total_tax", "total_line_items_price",
				"total_discounts", "subtotal_price", "total_price",
				"line_items", "updated_at",
			}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]lineItemRecord, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		items = append(items, lineItemRecord{
			ID:        item.ID,
			Title:     item.Title,
			Brand:     item.Brand,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}
	return orderRecord{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		FinancialStatus:     order.FinancialStatus,
		FulfillmentStatus:   order.FulfillmentStatus,
		TotalShippingPrice:  order.TotalShippingPrice,
		TotalTax:            order.TotalTax,
		TotalLineItemsPrice: order.TotalLineItemsPrice,
		TotalDiscounts:      order.TotalDiscounts,
		SubtotalPrice:       order.SubtotalPrice,
		TotalPrice:          order.TotalPrice,
		LineItems:           items,
		CreatedAt:           order.CreatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.LineItem, 0, len(r.LineItems))
	for _, item := range r.LineItems {
		items = append(items, domain.LineItem{
			ID:        item.ID,
			Title:     item.Title,
			Brand:     item.Brand,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
		})
	}
	return &domain.Order{
		ID:                  r.ID,
		OrderNumber:         r.OrderNumber,
		CreatedAt:           r.CreatedAt,
		FinancialStatus:     r.FinancialStatus,
		FulfillmentStatus:   r.FulfillmentStatus,
		TotalShippingPrice:  r.TotalShippingPrice,
		TotalTax:            r.TotalTax,
		TotalLineItemsPrice: r.TotalLineItemsPrice,
		TotalDiscounts:      r.TotalDiscounts,
		SubtotalPrice:       r.SubtotalPrice,
		TotalPrice:          r.TotalPrice,
		LineItems:           items,
	}
}
