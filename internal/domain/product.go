package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultStock is the stock quantity assigned to products created without one.
const DefaultStock = 10

// Product is a sellable item. It belongs to at most one category and is
// linked to any number of tags through the product_tag association table.
type Product struct {
	ID         int64           `json:"id"`
	Name       string          `json:"product_name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	CategoryID *int64          `json:"category_id"`

	// Category and Tags are populated only when the product is loaded with
	// its relations.
	Category *Category `json:"category,omitempty"`
	Tags     []*Tag    `json:"tags,omitempty"`
}

// NewProduct creates a validated, not yet persisted Product.
// A nil stock falls back to DefaultStock.
func NewProduct(name string, price decimal.Decimal, stock *int, categoryID *int64) (*Product, error) {
	p := &Product{
		Name:       strings.TrimSpace(name),
		Price:      price,
		Stock:      DefaultStock,
		CategoryID: categoryID,
	}
	if stock != nil {
		p.Stock = *stock
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the product's mutable attributes.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("product_name", "is required", ErrEmptyName)
	}
	if p.Price.IsNegative() {
		return NewValidationError("price", "must be zero or greater", ErrNegativePrice)
	}
	if p.Stock < 0 {
		return NewValidationError("stock", "must be zero or greater", ErrNegativeStock)
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		return NewValidationError("category_id", "must be a positive integer", ErrInvalidID)
	}
	return nil
}

// TagIDs returns the ids of the product's loaded tags.
func (p *Product) TagIDs() []int64 {
	ids := make([]int64, 0, len(p.Tags))
	for _, t := range p.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}
