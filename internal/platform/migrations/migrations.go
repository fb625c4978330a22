package migrations

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DefaultOrderNotifyChannel is the LISTEN/NOTIFY channel fed by the orders trigger.
const DefaultOrderNotifyChannel = "order_changed"

// Run applies the schema for the bounded contexts and installs the order-change
// trigger on the given notify channel.
func Run(db *gorm.DB, notifyChannel string) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&orderRecord{},
		&productRecord{},
		&userRecord{},
	); err != nil {
		return err
	}
	if notifyChannel == "" {
		notifyChannel = DefaultOrderNotifyChannel
	}
	for _, stmt := range orderNotifyStatements(notifyChannel) {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID                  string    `gorm:"primaryKey;column:id;size:64"`
	OrderNumber         int64     `gorm:"column:order_number;index"`
	FinancialStatus     string    `gorm:"column:financial_status;type:varchar(32)"`
	FulfillmentStatus   string    `gorm:"column:fulfillment_status;type:varchar(32)"`
	TotalShippingPrice  float64   `gorm:"column:total_shipping_price"`
	TotalTax            float64   `gorm:"column:total_tax"`
	TotalLineItemsPrice float64   `gorm:"column:total_line_items_price"`
	TotalDiscounts      float64   `gorm:"column:total_discounts"`
	SubtotalPrice       float64   `gorm:"column:subtotal_price"`
	TotalPrice          float64   `gorm:"column:total_price"`
	LineItems           []byte    `gorm:"column:line_items;type:jsonb"`
	CreatedAt           time.Time `gorm:"column:created_at;index"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Images    []byte    `gorm:"column:images;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// orderNotifyStatements publish the id of every inserted or updated order so the
// API can rebroadcast it without a webhook.
func orderNotifyStatements(channel string) []string {
	return []string{
		fmt.Sprintf(`CREATE OR REPLACE FUNCTION notify_order_changed() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(%s, NEW.id);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql`, pq.QuoteLiteral(channel)),
		`DROP TRIGGER IF EXISTS orders_notify_changed ON orders`,
		`CREATE TRIGGER orders_notify_changed
	AFTER INSERT OR UPDATE ON orders
	FOR EACH ROW EXECUTE FUNCTION notify_order_changed()`,
	}
}
