package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

// PostgresProductTagStore implements the store.ProductTagStore interface
// over the product_tag association table.
type PostgresProductTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductTagStore creates a new PostgreSQL implementation of the ProductTagStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProductTagStore(db store.DBTX, logger *slog.Logger) *PostgresProductTagStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_tag_store")),
	}
}

// Ensure PostgresProductTagStore implements store.ProductTagStore interface
var _ store.ProductTagStore = (*PostgresProductTagStore)(nil)

// ListByProducts implements store.ProductTagStore.ListByProducts
func (s *PostgresProductTagStore) ListByProducts(ctx context.Context, productIDs []int64) ([]domain.ProductTag, error) {
	return s.listBy(ctx, "product_id", productIDs)
}

// ListByTags implements store.ProductTagStore.ListByTags
func (s *PostgresProductTagStore) ListByTags(ctx context.Context, tagIDs []int64) ([]domain.ProductTag, error) {
	return s.listBy(ctx, "tag_id", tagIDs)
}

func (s *PostgresProductTagStore) listBy(ctx context.Context, column string, ids []int64) ([]domain.ProductTag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return []domain.ProductTag{}, nil
	}

	list, args := inList(1, ids)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, tag_id FROM product_tag WHERE `+column+` IN `+list+` ORDER BY id`,
		args...)
	if err != nil {
		log.Error("failed to query product tags",
			slog.String("error", err.Error()),
			slog.String("by", column))
		return nil, MapError(err)
	}
	defer closeRows(ctx, log, rows)

	links := []domain.ProductTag{}
	for rows.Next() {
		var pt domain.ProductTag
		if err := rows.Scan(&pt.ID, &pt.ProductID, &pt.TagID); err != nil {
			log.Error("failed to scan product tag row", slog.String("error", err.Error()))
			return nil, err
		}
		links = append(links, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}

// CreateMany implements store.ProductTagStore.CreateMany
func (s *PostgresProductTagStore) CreateMany(ctx context.Context, links []domain.ProductTag) ([]domain.ProductTag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(links) == 0 {
		return []domain.ProductTag{}, nil
	}

	var b strings.Builder
	args := make([]any, 0, len(links)*2)
	b.WriteString(`INSERT INTO product_tag (product_id, tag_id) VALUES `)
	for i, pt := range links {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("($" + strconv.Itoa(2*i+1) + ", $" + strconv.Itoa(2*i+2) + ")")
		args = append(args, pt.ProductID, pt.TagID)
	}
	b.WriteString(` RETURNING id, product_id, tag_id`)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		log.Error("failed to insert product tags",
			slog.String("error", err.Error()),
			slog.Int("count", len(links)))
		return nil, MapError(err)
	}
	defer closeRows(ctx, log, rows)

	created := make([]domain.ProductTag, 0, len(links))
	for rows.Next() {
		var pt domain.ProductTag
		if err := rows.Scan(&pt.ID, &pt.ProductID, &pt.TagID); err != nil {
			return nil, err
		}
		created = append(created, pt)
	}
	// Constraint violations surface here with pgx when the statement is
	// executed lazily.
	if err := rows.Err(); err != nil {
		log.Error("failed to insert product tags", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("product tags created", slog.Int("count", len(created)))
	return created, nil
}

// DeleteByIDs implements store.ProductTagStore.DeleteByIDs
func (s *PostgresProductTagStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(ids) == 0 {
		return 0, nil
	}

	list, args := inList(1, ids)
	result, err := s.db.ExecContext(ctx, `DELETE FROM product_tag WHERE id IN `+list, args...)
	if err != nil {
		log.Error("failed to delete product tags",
			slog.String("error", err.Error()),
			slog.Int("count", len(ids)))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.Debug("product tags deleted", slog.Int64("count", deleted))
	return deleted, nil
}

// WithTx implements store.ProductTagStore.WithTx
func (s *PostgresProductTagStore) WithTx(tx *sql.Tx) store.ProductTagStore {
	return &PostgresProductTagStore{db: tx, logger: s.logger}
}
