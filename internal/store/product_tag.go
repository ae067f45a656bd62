package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/catalog-api/internal/domain"
)

// ProductTagStore defines the interface for the product/tag association table.
type ProductTagStore interface {
	// ListByProducts returns every association row for the given products,
	// ordered by id.
	ListByProducts(ctx context.Context, productIDs []int64) ([]domain.ProductTag, error)

	// ListByTags returns every association row for the given tags, ordered by id.
	ListByTags(ctx context.Context, tagIDs []int64) ([]domain.ProductTag, error)

	// CreateMany inserts all rows in a single statement and returns them with
	// their ids set. An empty input is a no-op.
	// Returns an error wrapping ErrInvalidEntity if a product or tag is
	// missing, or ErrDuplicate if a pairing already exists.
	CreateMany(ctx context.Context, rows []domain.ProductTag) ([]domain.ProductTag, error)

	// DeleteByIDs removes the association rows with the given ids in a single
	// statement and returns the number of rows removed. An empty input is a no-op.
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	// WithTx returns a ProductTagStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProductTagStore
}
