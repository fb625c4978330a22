// Package types holds the display shapes produced by order assembly. They are
// derived per request, never persisted, and serialize to the keys the dashboard
// templates and realtime clients read.
package types

// Image is the display shape of a product picture.
type Image struct {
	Src     string `json:"src"`
	SrcWebp string `json:"srcWebp"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Alt     string `json:"alt"`
}

// LineItemView embeds the product's images and its primary image. Image is nil
// when the product has none.
type LineItemView struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ProductID string  `json:"productId"`
	Images    []Image `json:"images"`
	Image     *Image  `json:"image"`
}

// OrderView is the assembled display representation of one order.
type OrderView struct {
	ID                  string         `json:"id"`
	OrderNumber         int64          `json:"orderNumber"`
	Date                string         `json:"date"`
	FinancialStatus     string         `json:"financialStatus"`
	FulfillmentStatus   string         `json:"fulfillmentStatus"`
	TotalShippingPrice  float64        `json:"totalShippingPrice"`
	TotalTax            float64        `json:"totalTax"`
	TotalLineItemsPrice float64        `json:"totalLineItemsPrice"`
	TotalDiscounts      float64        `json:"totalDiscounts"`
	SubtotalPrice       float64        `json:"subtotalPrice"`
	TotalPrice          float64        `json:"totalPrice"`
	LineItems           []LineItemView `json:"lineItems"`
}
