package domain

import (
	"errors"
	"strings"
)

var ErrEmptyProductID = errors.New("product id is required")

// Image is a stored product picture. All attributes are opaque display data.
type Image struct {
	Src     string
	SrcWebp string
	Width   int
	Height  int
	Alt     string
}

// Product is reference data joined into order line items.
type Product struct {
	ID     string
	Images []Image
}

// NewProduct validates and constructs a Product, keeping image order.
func NewProduct(id string, images ...Image) (*Product, error) {
	product := &Product{ID: strings.TrimSpace(id), Images: append([]Image(nil), images...)}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the product.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyProductID
	}
	return nil
}

// Clone returns a deep copy so callers never share the image slice.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Images = append([]Image(nil), p.Images...)
	return &clone
}
