package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

// PostgresTagStore implements the store.TagStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a new PostgreSQL implementation of the TagStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

// Ensure PostgresTagStore implements store.TagStore interface
var _ store.TagStore = (*PostgresTagStore)(nil)

// List implements store.TagStore.List
func (s *PostgresTagStore) List(ctx context.Context, filter store.TagFilter) ([]*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, tag_name FROM tag`
	var args []any
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return []*domain.Tag{}, nil
		}
		var list string
		list, args = inList(1, filter.IDs)
		query += ` WHERE id IN ` + list
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tags", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(ctx, log, rows)

	tags := []*domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			log.Error("failed to scan tag row", slog.String("error", err.Error()))
			return nil, err
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

// GetByID implements store.TagStore.GetByID
// Returns store.ErrTagNotFound if the tag does not exist.
func (s *PostgresTagStore) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var t domain.Tag
	err := s.db.QueryRowContext(ctx, `SELECT id, tag_name FROM tag WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("tag not found", slog.Int64("tag_id", id))
			return nil, store.ErrTagNotFound
		}
		log.Error("failed to get tag by ID",
			slog.String("error", err.Error()),
			slog.Int64("tag_id", id))
		return nil, MapError(err)
	}
	return &t, nil
}

// Create implements store.TagStore.Create
func (s *PostgresTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx, `INSERT INTO tag (tag_name) VALUES ($1) RETURNING id`, tag.Name).Scan(&tag.ID)
	if err != nil {
		log.Error("failed to create tag", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("tag created", slog.Int64("tag_id", tag.ID))
	return nil
}

// Update implements store.TagStore.Update
func (s *PostgresTagStore) Update(ctx context.Context, tag *domain.Tag) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tag.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `UPDATE tag SET tag_name = $1 WHERE id = $2`, tag.Name, tag.ID)
	if err != nil {
		log.Error("failed to update tag",
			slog.String("error", err.Error()),
			slog.Int64("tag_id", tag.ID))
		return MapError(err)
	}
	if _, err := CheckRowsAffected(result, store.ErrTagNotFound); err != nil {
		return err
	}

	log.Info("tag updated", slog.Int64("tag_id", tag.ID))
	return nil
}

// Delete implements store.TagStore.Delete
func (s *PostgresTagStore) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tag WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete tag",
			slog.String("error", err.Error()),
			slog.Int64("tag_id", id))
		return 0, MapError(err)
	}

	deleted, err := CheckRowsAffected(result, store.ErrTagNotFound)
	if err != nil {
		return 0, err
	}

	log.Info("tag deleted", slog.Int64("tag_id", id))
	return deleted, nil
}

// WithTx implements store.TagStore.WithTx
func (s *PostgresTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &PostgresTagStore{db: tx, logger: s.logger}
}
