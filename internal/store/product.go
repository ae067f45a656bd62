package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/catalog-api/internal/domain"
)

// ProductFilter narrows ProductStore.List. The zero value matches every product.
// Non-nil slices restrict the result; a non-nil empty slice matches nothing.
type ProductFilter struct {
	IDs         []int64
	CategoryIDs []int64
}

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// List returns the products matching filter ordered by id.
	// Category and Tags are not loaded.
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	// GetByID retrieves a product by its id.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// GetForUpdate retrieves a product and locks its row until the enclosing
	// transaction ends, serializing concurrent updates of the same product.
	// Only meaningful on a store bound to a transaction.
	// Returns ErrProductNotFound if the product does not exist.
	GetForUpdate(ctx context.Context, id int64) (*domain.Product, error)

	// Create inserts a new product and sets its ID.
	// Returns an error wrapping ErrInvalidEntity if CategoryID references a
	// missing category.
	Create(ctx context.Context, product *domain.Product) error

	// Update saves the product's mutable attributes.
	// Returns ErrProductNotFound if no row was affected.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product, and through ON DELETE CASCADE its tag links,
	// returning the number of product rows removed.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id int64) (int64, error)

	// WithTx returns a ProductStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProductStore
}
