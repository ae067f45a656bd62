package api

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices are rendered as JSON numbers rather than strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Request payloads. Field names follow the catalog's JSON vocabulary;
// update payloads use pointers so absent fields are left untouched.

// CreateCategoryRequest defines the payload for POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"category_name" validate:"required"`
}

// UpdateCategoryRequest defines the payload for PUT /api/categories/{id}.
type UpdateCategoryRequest struct {
	Name *string `json:"category_name" validate:"omitempty,min=1"`
}

// CreateTagRequest defines the payload for POST /api/tags.
type CreateTagRequest struct {
	Name string `json:"tag_name" validate:"required"`
}

// UpdateTagRequest defines the payload for PUT /api/tags/{id}.
type UpdateTagRequest struct {
	Name *string `json:"tag_name" validate:"omitempty,min=1"`
}

// CreateProductRequest defines the payload for POST /api/products.
// Price accepts a JSON number or a numeric string.
type CreateProductRequest struct {
	Name       string           `json:"product_name" validate:"required"`
	Price      *decimal.Decimal `json:"price"        validate:"required"`
	Stock      *int             `json:"stock"        validate:"omitempty,gte=0"`
	CategoryID *int64           `json:"category_id"  validate:"omitempty,gt=0"`
	TagIDs     []int64          `json:"tagIds"       validate:"omitempty,dive,gt=0"`
}

// UpdateProductRequest defines the payload for PUT /api/products/{id}.
// A present tagIds array, even an empty one, replaces the product's tags.
type UpdateProductRequest struct {
	Name       *string          `json:"product_name" validate:"omitempty,min=1"`
	Price      *decimal.Decimal `json:"price"`
	Stock      *int             `json:"stock"        validate:"omitempty,gte=0"`
	CategoryID *int64           `json:"category_id"  validate:"omitempty,gt=0"`
	TagIDs     []int64          `json:"tagIds"       validate:"omitempty,dive,gt=0"`
}

// DeleteResponse reports how many rows a DELETE removed.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
