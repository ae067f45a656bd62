package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

const productColumns = `id, product_name, price, stock, category_id`

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the ProductStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p          domain.Product
		categoryID sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &categoryID); err != nil {
		return nil, err
	}
	p.CategoryID = idPtr(categoryID)
	return &p, nil
}

// List implements store.ProductStore.List
func (s *PostgresProductStore) List(ctx context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// A non-nil empty filter cannot match anything.
	if (filter.IDs != nil && len(filter.IDs) == 0) ||
		(filter.CategoryIDs != nil && len(filter.CategoryIDs) == 0) {
		return []*domain.Product{}, nil
	}

	var (
		where []string
		args  []any
	)
	if filter.IDs != nil {
		list, a := inList(len(args)+1, filter.IDs)
		where = append(where, "id IN "+list)
		args = append(args, a...)
	}
	if filter.CategoryIDs != nil {
		list, a := inList(len(args)+1, filter.CategoryIDs)
		where = append(where, "category_id IN "+list)
		args = append(args, a...)
	}

	query := `SELECT ` + productColumns + ` FROM product`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(ctx, log, rows)

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", slog.String("error", err.Error()))
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning product rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed products", slog.Int("count", len(products)))
	return products, nil
}

// GetByID implements store.ProductStore.GetByID
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getByID(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id)
}

// GetForUpdate implements store.ProductStore.GetForUpdate
func (s *PostgresProductStore) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getByID(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1 FOR UPDATE`, id)
}

func (s *PostgresProductStore) getByID(ctx context.Context, query string, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.Int64("product_id", id))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, MapError(err)
	}

	return p, nil
}

// Create implements store.ProductStore.Create
// A category_id that references no category is rejected by the foreign key
// and reported as store.ErrInvalidEntity.
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO product (product_name, price, stock, category_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		product.Name, product.Price, product.Stock, nullableID(product.CategoryID),
	).Scan(&product.ID)
	if err != nil {
		log.Error("failed to create product", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("product created", slog.Int64("product_id", product.ID))
	return nil
}

// Update implements store.ProductStore.Update
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE product
		 SET product_name = $1, price = $2, stock = $3, category_id = $4
		 WHERE id = $5`,
		product.Name, product.Price, product.Stock, nullableID(product.CategoryID), product.ID,
	)
	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return MapError(err)
	}

	if _, err := CheckRowsAffected(result, store.ErrProductNotFound); err != nil {
		return err
	}

	log.Info("product updated", slog.Int64("product_id", product.ID))
	return nil
}

// Delete implements store.ProductStore.Delete
func (s *PostgresProductStore) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM product WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return 0, MapError(err)
	}

	deleted, err := CheckRowsAffected(result, store.ErrProductNotFound)
	if err != nil {
		return 0, err
	}

	log.Info("product deleted", slog.Int64("product_id", id))
	return deleted, nil
}

// WithTx implements store.ProductStore.WithTx
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{db: tx, logger: s.logger}
}
