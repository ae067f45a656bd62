package domain

import "strings"

// Category groups products. A category owns zero or more products; deleting
// it leaves those products without a category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"category_name"`

	// Products is populated only when the category is loaded with its relations.
	Products []*Product `json:"products,omitempty"`
}

// NewCategory creates a validated, not yet persisted Category.
func NewCategory(name string) (*Category, error) {
	c := &Category{Name: strings.TrimSpace(name)}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the category's mutable attributes.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("category_name", "is required", ErrEmptyName)
	}
	return nil
}
