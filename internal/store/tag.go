package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/catalog-api/internal/domain"
)

// TagFilter narrows TagStore.List. The zero value matches every tag.
type TagFilter struct {
	// IDs restricts the result to the given tag ids when non-nil.
	// A non-nil empty slice matches nothing.
	IDs []int64
}

// TagStore defines the interface for tag data persistence.
type TagStore interface {
	// List returns the tags matching filter ordered by id. Relations are not loaded.
	List(ctx context.Context, filter TagFilter) ([]*domain.Tag, error)

	// GetByID retrieves a tag by its id.
	// Returns ErrTagNotFound if the tag does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)

	// Create inserts a new tag and sets its ID.
	Create(ctx context.Context, tag *domain.Tag) error

	// Update saves the tag's mutable attributes.
	// Returns ErrTagNotFound if no row was affected.
	Update(ctx context.Context, tag *domain.Tag) error

	// Delete removes a tag, and through ON DELETE CASCADE its product links,
	// returning the number of tag rows removed.
	// Returns ErrTagNotFound if the tag does not exist.
	Delete(ctx context.Context, id int64) (int64, error)

	// WithTx returns a TagStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TagStore
}
