package domain

import "strings"

// Tag is a free-form label attached to products through ProductTag rows.
// Tag names are unique by convention only.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"tag_name"`

	// Products is populated only when the tag is loaded with its relations.
	Products []*Product `json:"products,omitempty"`
}

// NewTag creates a validated, not yet persisted Tag.
func NewTag(name string) (*Tag, error) {
	t := &Tag{Name: strings.TrimSpace(name)}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the tag's mutable attributes.
func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("tag_name", "is required", ErrEmptyName)
	}
	return nil
}
