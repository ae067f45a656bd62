package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/catalog-api/internal/domain"
)

// CategoryFilter narrows CategoryStore.List. The zero value matches every category.
type CategoryFilter struct {
	// IDs restricts the result to the given category ids when non-nil.
	// A non-nil empty slice matches nothing.
	IDs []int64
}

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// List returns the categories matching filter ordered by id.
	// Relations are not loaded.
	List(ctx context.Context, filter CategoryFilter) ([]*domain.Category, error)

	// GetByID retrieves a category by its id.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// Create inserts a new category and sets its ID.
	Create(ctx context.Context, category *domain.Category) error

	// Update saves the category's mutable attributes.
	// Returns ErrCategoryNotFound if no row was affected.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category and returns the number of rows removed.
	// Products in the category keep existing with a NULL category_id.
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id int64) (int64, error)

	// WithTx returns a CategoryStore bound to the provided transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
