package application

import (
	"time"

	catalogdomain "github.com/Apurer/go-gin-order-dashboard/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
)

// DisplayDateLayout is the fixed dashboard date format, always rendered in UTC.
const DisplayDateLayout = "02.01.2006 15:04"

// DateFormatter renders an order timestamp for display.
type DateFormatter func(time.Time) string

// FormatDisplayDate renders t in UTC using DisplayDateLayout.
func FormatDisplayDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}

// ProjectImages maps stored product images to their display shape, keeping order.
// The result is never nil.
func ProjectImages(images []catalogdomain.Image) []types.Image {
	projected := make([]types.Image, 0, len(images))
	for _, img := range images {
		projected = append(projected, types.Image{
			Src:     img.Src,
			SrcWebp: img.SrcWebp,
			Width:   img.Width,
			Height:  img.Height,
			Alt:     img.Alt,
		})
	}
	return projected
}

// Aggregator joins an order with its referenced products. It holds no mutable
// state and is safe for concurrent use.
type Aggregator struct {
	formatDate DateFormatter
}

type AggregatorOption func(*Aggregator)

// WithDateFormatter overrides FormatDisplayDate.
func WithDateFormatter(f DateFormatter) AggregatorOption {
	return func(a *Aggregator) {
		if f != nil {
			a.formatDate = f
		}
	}
}

func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{formatDate: FormatDisplayDate}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Assemble builds the view of order. products must hold a product for every line
// item; extra products are ignored. A gap fails the whole assembly with a
// *MissingProductReferenceError and no view.
func (a *Aggregator) Assemble(order *domain.Order, products []*catalogdomain.Product) (*types.OrderView, error) {
	index := make(map[string]*catalogdomain.Product, len(products))
	for _, product := range products {
		if product == nil {
			continue
		}
		if _, ok := index[product.ID]; !ok {
			index[product.ID] = product
		}
	}

	items := make([]types.LineItemView, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		product, ok := index[item.ProductID]
		if !ok {
			return nil, &MissingProductReferenceError{OrderID: order.ID, LineItemID: item.ID, ProductID: item.ProductID}
		}
		images := ProjectImages(product.Images)
		var primary *types.Image
		if len(images) > 0 {
			first := images[0]
			primary = &first
		}
		items = append(items, types.LineItemView{
			ID:        item.ID,
			Title:     item.Title,
			Brand:     item.Brand,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ProductID: item.ProductID,
			Images:    images,
			Image:     primary,
		})
	}

	return &types.OrderView{
		ID:                  order.ID,
		OrderNumber:         order.OrderNumber,
		Date:                a.formatDate(order.CreatedAt),
		FinancialStatus:     order.FinancialStatus,
		FulfillmentStatus:   order.FulfillmentStatus,
		TotalShippingPrice:  order.TotalShippingPrice,
		TotalTax:            order.TotalTax,
		TotalLineItemsPrice: order.TotalLineItemsPrice,
		TotalDiscounts:      order.TotalDiscounts,
		SubtotalPrice:       order.SubtotalPrice,
		TotalPrice:          order.TotalPrice,
		LineItems:           items,
	}, nil
}
