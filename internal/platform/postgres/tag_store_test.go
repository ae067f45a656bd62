package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/postgres"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTagStore(t *testing.T) (sqlmock.Sqlmock, *postgres.PostgresTagStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return mock, postgres.NewPostgresTagStore(db, nil)
}

func TestTagStore_List(t *testing.T) {
	t.Parallel()

	t.Run("all", func(t *testing.T) {
		mock, s := newTagStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, tag_name FROM tag ORDER BY id`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tag_name"}).AddRow(1, "rock music").AddRow(2, "pop music"))

		tags, err := s.List(context.Background(), store.TagFilter{})

		require.NoError(t, err)
		assert.Equal(t, []*domain.Tag{{ID: 1, Name: "rock music"}, {ID: 2, Name: "pop music"}}, tags)
	})

	t.Run("by ids", func(t *testing.T) {
		mock, s := newTagStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, tag_name FROM tag WHERE id IN ($1, $2) ORDER BY id`)).
			WithArgs(int64(3), int64(8)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tag_name"}).AddRow(3, "blue"))

		tags, err := s.List(context.Background(), store.TagFilter{IDs: []int64{3, 8}})

		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("empty ids", func(t *testing.T) {
		_, s := newTagStore(t)

		tags, err := s.List(context.Background(), store.TagFilter{IDs: []int64{}})

		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}

func TestTagStore_CRUD(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		mock, s := newTagStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO tag (tag_name) VALUES ($1) RETURNING id`)).
			WithArgs("green").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

		tag := &domain.Tag{Name: "green"}
		require.NoError(t, s.Create(context.Background(), tag))
		assert.Equal(t, int64(9), tag.ID)
	})

	t.Run("get missing", func(t *testing.T) {
		mock, s := newTagStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, tag_name FROM tag WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tag_name"}))

		_, err := s.GetByID(context.Background(), 5)

		assert.ErrorIs(t, err, store.ErrTagNotFound)
	})

	t.Run("update", func(t *testing.T) {
		mock, s := newTagStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE tag SET tag_name = $1 WHERE id = $2`)).
			WithArgs("vintage", int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Update(context.Background(), &domain.Tag{ID: 2, Name: "vintage"}))
	})

	t.Run("delete missing", func(t *testing.T) {
		mock, s := newTagStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tag WHERE id = $1`)).
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := s.Delete(context.Background(), 2)

		assert.ErrorIs(t, err, store.ErrTagNotFound)
	})
}
