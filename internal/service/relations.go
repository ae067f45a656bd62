package service

import (
	"context"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
)

// relationLoader attaches related entities to already loaded rows. Each
// relation costs one query regardless of how many rows are being decorated.
type relationLoader struct {
	categories store.CategoryStore
	products   store.ProductStore
	tags       store.TagStore
	links      store.ProductTagStore
}

// productsWithRelations sets Category and Tags on every product.
func (l relationLoader) productsWithRelations(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	productIDs := make([]int64, 0, len(products))
	var categoryIDs []int64
	seenCategory := make(map[int64]struct{})
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		if p.CategoryID == nil {
			continue
		}
		if _, ok := seenCategory[*p.CategoryID]; !ok {
			seenCategory[*p.CategoryID] = struct{}{}
			categoryIDs = append(categoryIDs, *p.CategoryID)
		}
	}

	if len(categoryIDs) > 0 {
		categories, err := l.categories.List(ctx, store.CategoryFilter{IDs: categoryIDs})
		if err != nil {
			return err
		}
		byID := make(map[int64]*domain.Category, len(categories))
		for _, c := range categories {
			byID[c.ID] = c
		}
		for _, p := range products {
			if p.CategoryID != nil {
				p.Category = byID[*p.CategoryID]
			}
		}
	}

	links, err := l.links.ListByProducts(ctx, productIDs)
	if err != nil {
		return err
	}
	tagsByID, err := l.tagsByID(ctx, links)
	if err != nil {
		return err
	}

	byProduct := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		p.Tags = []*domain.Tag{}
		byProduct[p.ID] = p
	}
	for _, link := range links {
		p, ok := byProduct[link.ProductID]
		if !ok {
			continue
		}
		if tag, ok := tagsByID[link.TagID]; ok {
			p.Tags = append(p.Tags, tag)
		}
	}
	return nil
}

func (l relationLoader) tagsByID(ctx context.Context, links []domain.ProductTag) (map[int64]*domain.Tag, error) {
	ids := uniqueIDs(links, func(pt domain.ProductTag) int64 { return pt.TagID })
	if len(ids) == 0 {
		return map[int64]*domain.Tag{}, nil
	}

	tags, err := l.tags.List(ctx, store.TagFilter{IDs: ids})
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	return byID, nil
}

// categoriesWithProducts sets Products on every category.
func (l relationLoader) categoriesWithProducts(ctx context.Context, categories []*domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(categories))
	byID := make(map[int64]*domain.Category, len(categories))
	for _, c := range categories {
		c.Products = []*domain.Product{}
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}

	products, err := l.products.List(ctx, store.ProductFilter{CategoryIDs: ids})
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.CategoryID == nil {
			continue
		}
		if c, ok := byID[*p.CategoryID]; ok {
			c.Products = append(c.Products, p)
		}
	}
	return nil
}

// tagsWithProducts sets Products on every tag.
func (l relationLoader) tagsWithProducts(ctx context.Context, tags []*domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(tags))
	byID := make(map[int64]*domain.Tag, len(tags))
	for _, t := range tags {
		t.Products = []*domain.Product{}
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	links, err := l.links.ListByTags(ctx, ids)
	if err != nil {
		return err
	}
	productIDs := uniqueIDs(links, func(pt domain.ProductTag) int64 { return pt.ProductID })
	if len(productIDs) == 0 {
		return nil
	}

	products, err := l.products.List(ctx, store.ProductFilter{IDs: productIDs})
	if err != nil {
		return err
	}
	productsByID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	for _, link := range links {
		t, ok := byID[link.TagID]
		if !ok {
			continue
		}
		if p, ok := productsByID[link.ProductID]; ok {
			t.Products = append(t.Products, p)
		}
	}
	return nil
}

func uniqueIDs(links []domain.ProductTag, key func(domain.ProductTag) int64) []int64 {
	seen := make(map[int64]struct{}, len(links))
	ids := make([]int64, 0, len(links))
	for _, link := range links {
		id := key(link)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
