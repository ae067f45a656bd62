package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogFake is an in-memory catalog shared by the fake stores below. The
// fakes ignore transactions: WithTx returns the receiver, so tests observe
// writes immediately and must assert rollback through sqlmock.
type catalogFake struct {
	categories map[int64]*domain.Category
	products   map[int64]*domain.Product
	tags       map[int64]*domain.Tag
	links      map[int64]domain.ProductTag
	nextID     int64

	failCreateMany error
	failDelete     error
	failList       error

	// lockedReads counts GetForUpdate calls.
	lockedReads int
}

func newCatalogFake() *catalogFake {
	return &catalogFake{
		categories: map[int64]*domain.Category{},
		products:   map[int64]*domain.Product{},
		tags:       map[int64]*domain.Tag{},
		links:      map[int64]domain.ProductTag{},
		nextID:     100,
	}
}

func (f *catalogFake) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *catalogFake) addCategory(name string) *domain.Category {
	c := &domain.Category{ID: f.id(), Name: name}
	f.categories[c.ID] = c
	return c
}

func (f *catalogFake) addTag(name string) *domain.Tag {
	t := &domain.Tag{ID: f.id(), Name: name}
	f.tags[t.ID] = t
	return t
}

func (f *catalogFake) addProduct(p domain.Product, tagIDs ...int64) *domain.Product {
	p.ID = f.id()
	f.products[p.ID] = &p
	for _, tagID := range tagIDs {
		link := domain.ProductTag{ID: f.id(), ProductID: p.ID, TagID: tagID}
		f.links[link.ID] = link
	}
	return &p
}

// tagIDsOf returns the sorted tag ids currently linked to productID.
func (f *catalogFake) tagIDsOf(productID int64) []int64 {
	ids := []int64{}
	for _, l := range f.links {
		if l.ProductID == productID {
			ids = append(ids, l.TagID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func matches(ids []int64, id int64) bool {
	if ids == nil {
		return true
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeCategoryStore struct{ *catalogFake }

func (s fakeCategoryStore) List(_ context.Context, filter store.CategoryFilter) ([]*domain.Category, error) {
	out := []*domain.Category{}
	for _, id := range sortedKeys(s.categories) {
		if matches(filter.IDs, id) {
			c := *s.categories[id]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s fakeCategoryStore) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (s fakeCategoryStore) Create(_ context.Context, c *domain.Category) error {
	c.ID = s.id()
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s fakeCategoryStore) Update(_ context.Context, c *domain.Category) error {
	if _, ok := s.categories[c.ID]; !ok {
		return store.ErrCategoryNotFound
	}
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s fakeCategoryStore) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := s.categories[id]; !ok {
		return 0, store.ErrCategoryNotFound
	}
	delete(s.categories, id)
	for _, p := range s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
		}
	}
	return 1, nil
}

func (s fakeCategoryStore) WithTx(*sql.Tx) store.CategoryStore { return s }

type fakeProductStore struct{ *catalogFake }

func (s fakeProductStore) List(_ context.Context, filter store.ProductFilter) ([]*domain.Product, error) {
	if s.failList != nil {
		return nil, s.failList
	}
	out := []*domain.Product{}
	for _, id := range sortedKeys(s.products) {
		p := s.products[id]
		if !matches(filter.IDs, id) {
			continue
		}
		if filter.CategoryIDs != nil && (p.CategoryID == nil || !matches(filter.CategoryIDs, *p.CategoryID)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s fakeProductStore) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s fakeProductStore) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	s.lockedReads++
	return s.GetByID(ctx, id)
}

func (s fakeProductStore) Create(_ context.Context, p *domain.Product) error {
	if p.CategoryID != nil {
		if _, ok := s.categories[*p.CategoryID]; !ok {
			return store.ErrInvalidEntity
		}
	}
	p.ID = s.id()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s fakeProductStore) Update(_ context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, ok := s.products[p.ID]; !ok {
		return store.ErrProductNotFound
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s fakeProductStore) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := s.products[id]; !ok {
		return 0, store.ErrProductNotFound
	}
	delete(s.products, id)
	for linkID, l := range s.links {
		if l.ProductID == id {
			delete(s.links, linkID)
		}
	}
	return 1, nil
}

func (s fakeProductStore) WithTx(*sql.Tx) store.ProductStore { return s }

type fakeTagStore struct{ *catalogFake }

func (s fakeTagStore) List(_ context.Context, filter store.TagFilter) ([]*domain.Tag, error) {
	out := []*domain.Tag{}
	for _, id := range sortedKeys(s.tags) {
		if matches(filter.IDs, id) {
			t := *s.tags[id]
			out = append(out, &t)
		}
	}
	return out, nil
}

func (s fakeTagStore) GetByID(_ context.Context, id int64) (*domain.Tag, error) {
	t, ok := s.tags[id]
	if !ok {
		return nil, store.ErrTagNotFound
	}
	cp := *t
	return &cp, nil
}

func (s fakeTagStore) Create(_ context.Context, t *domain.Tag) error {
	t.ID = s.id()
	cp := *t
	s.tags[t.ID] = &cp
	return nil
}

func (s fakeTagStore) Update(_ context.Context, t *domain.Tag) error {
	if _, ok := s.tags[t.ID]; !ok {
		return store.ErrTagNotFound
	}
	cp := *t
	s.tags[t.ID] = &cp
	return nil
}

func (s fakeTagStore) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := s.tags[id]; !ok {
		return 0, store.ErrTagNotFound
	}
	delete(s.tags, id)
	for linkID, l := range s.links {
		if l.TagID == id {
			delete(s.links, linkID)
		}
	}
	return 1, nil
}

func (s fakeTagStore) WithTx(*sql.Tx) store.TagStore { return s }

type fakeProductTagStore struct {
	*catalogFake
	creates int
	deletes int
}

func (s *fakeProductTagStore) list(pred func(domain.ProductTag) bool) []domain.ProductTag {
	out := []domain.ProductTag{}
	for _, id := range sortedKeys(s.links) {
		if pred(s.links[id]) {
			out = append(out, s.links[id])
		}
	}
	return out
}

func (s *fakeProductTagStore) ListByProducts(_ context.Context, ids []int64) ([]domain.ProductTag, error) {
	return s.list(func(l domain.ProductTag) bool { return matches(ids, l.ProductID) }), nil
}

func (s *fakeProductTagStore) ListByTags(_ context.Context, ids []int64) ([]domain.ProductTag, error) {
	return s.list(func(l domain.ProductTag) bool { return matches(ids, l.TagID) }), nil
}

func (s *fakeProductTagStore) CreateMany(_ context.Context, rows []domain.ProductTag) ([]domain.ProductTag, error) {
	s.creates++
	if s.failCreateMany != nil {
		return nil, s.failCreateMany
	}
	for _, r := range rows {
		if _, ok := s.tags[r.TagID]; !ok {
			return nil, store.ErrInvalidEntity
		}
		for _, l := range s.links {
			if l.ProductID == r.ProductID && l.TagID == r.TagID {
				return nil, store.ErrDuplicate
			}
		}
	}
	created := make([]domain.ProductTag, 0, len(rows))
	for _, r := range rows {
		r.ID = s.id()
		s.links[r.ID] = r
		created = append(created, r)
	}
	return created, nil
}

func (s *fakeProductTagStore) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	s.deletes++
	if s.failDelete != nil {
		return 0, s.failDelete
	}
	var n int64
	for _, id := range ids {
		if _, ok := s.links[id]; ok {
			delete(s.links, id)
			n++
		}
	}
	return n, nil
}

func (s *fakeProductTagStore) WithTx(*sql.Tx) store.ProductTagStore { return s }

// newMockDB returns a sqlmock-backed *sql.DB whose expectations are
// verified when the test ends.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}
