package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/domain/tagsync"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/shopspring/decimal"
)

// ProductInput carries the attributes of a product to create.
type ProductInput struct {
	Name       string
	Price      decimal.Decimal
	Stock      *int // nil means domain.DefaultStock
	CategoryID *int64
	TagIDs     []int64
}

// ProductPatch holds the product attributes a client asked to change. Nil
// fields are left untouched. A nil TagIDs leaves the product's tags alone;
// a non-nil slice, even an empty one, replaces them.
type ProductPatch struct {
	Name       *string
	Price      *decimal.Decimal
	Stock      *int
	CategoryID *int64
	TagIDs     []int64
}

func (p ProductPatch) apply(product *domain.Product) {
	if p.Name != nil {
		product.Name = strings.TrimSpace(*p.Name)
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.CategoryID != nil {
		id := *p.CategoryID
		product.CategoryID = &id
	}
}

// ProductServiceOptions tunes ProductService behaviour.
type ProductServiceOptions struct {
	// AtomicTagSync runs a product update and its tag reconciliation in one
	// transaction. When false the two reconciliation writes are committed
	// independently and a failed insert can leave the removal applied.
	AtomicTagSync bool
}

// ProductService provides product-related operations
type ProductService interface {
	// List returns every product with its category and tags.
	List(ctx context.Context) ([]*domain.Product, error)

	// Get returns one product with its category and tags.
	Get(ctx context.Context, id int64) (*domain.Product, error)

	// Create stores a product and links it to input.TagIDs in one transaction.
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)

	// Update applies patch to an existing product. When patch.TagIDs is set
	// the product's tags are reconciled to exactly that set.
	Update(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error)

	// Delete removes a product and its tag links, returning the number of
	// product rows removed.
	Delete(ctx context.Context, id int64) (int64, error)
}

// productServiceImpl implements the ProductService interface
type productServiceImpl struct {
	db       *sql.DB
	products store.ProductStore
	links    store.ProductTagStore
	loader   relationLoader
	options  ProductServiceOptions
	logger   *slog.Logger
}

// NewProductService creates a new ProductService
// It returns an error if any of the required dependencies are nil.
func NewProductService(
	db *sql.DB,
	products store.ProductStore,
	categories store.CategoryStore,
	tags store.TagStore,
	links store.ProductTagStore,
	options ProductServiceOptions,
	logger *slog.Logger,
) (ProductService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if tags == nil {
		return nil, domain.NewValidationError("tags", "cannot be nil", domain.ErrValidation)
	}
	if links == nil {
		return nil, domain.NewValidationError("links", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &productServiceImpl{
		db:       db,
		products: products,
		links:    links,
		loader: relationLoader{
			categories: categories,
			products:   products,
			tags:       tags,
			links:      links,
		},
		options: options,
		logger:  logger.With(slog.String("component", "product_service")),
	}, nil
}

// List implements ProductService.List
func (s *productServiceImpl) List(ctx context.Context) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	products, err := s.products.List(ctx, store.ProductFilter{})
	if err != nil {
		log.Error("failed to list products", slog.String("error", err.Error()))
		return nil, NewServiceError("product", "list", "failed to list products", err)
	}
	if err := s.loader.productsWithRelations(ctx, products); err != nil {
		log.Error("failed to load product relations", slog.String("error", err.Error()))
		return nil, NewServiceError("product", "list", "failed to load relations", err)
	}

	return products, nil
}

// Get implements ProductService.Get
func (s *productServiceImpl) Get(ctx context.Context, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to get product",
				slog.String("error", err.Error()),
				slog.Int64("product_id", id))
		}
		return nil, NewServiceError("product", "get", "failed to retrieve product", err)
	}
	if err := s.loader.productsWithRelations(ctx, []*domain.Product{product}); err != nil {
		log.Error("failed to load product relations",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, NewServiceError("product", "get", "failed to load relations", err)
	}

	return product, nil
}

// Create implements ProductService.Create
// The product row and its tag links are written in a single transaction.
func (s *productServiceImpl) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	product, err := domain.NewProduct(input.Name, input.Price, input.Stock, input.CategoryID)
	if err != nil {
		log.Debug("invalid product", slog.String("error", err.Error()))
		return nil, err
	}
	if err := domain.ValidateTagIDs(input.TagIDs); err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.products.WithTx(tx).Create(ctx, product); err != nil {
			return err
		}

		changes := tagsync.Plan(product.ID, input.TagIDs, nil)
		if len(changes.ToInsert) == 0 {
			return nil
		}
		if _, err := s.links.WithTx(tx).CreateMany(ctx, changes.ToInsert); err != nil {
			return &TagSyncError{ProductID: product.ID, Step: TagSyncStepInsert, Err: err}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create product", slog.String("error", err.Error()))
		return nil, NewServiceError("product", "create", "failed to save product", err)
	}

	log.Info("product created",
		slog.Int64("product_id", product.ID),
		slog.Int("tag_count", len(input.TagIDs)))
	return s.Get(ctx, product.ID)
}

// Update implements ProductService.Update
func (s *productServiceImpl) Update(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateTagIDs(patch.TagIDs); err != nil {
		return nil, err
	}

	var err error
	if s.options.AtomicTagSync {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.update(ctx, s.products.WithTx(tx), s.links.WithTx(tx), id, patch, true)
		})
	} else {
		err = s.update(ctx, s.products, s.links, id, patch, false)
	}
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to update product",
				slog.String("error", err.Error()),
				slog.Int64("product_id", id))
		}
		return nil, NewServiceError("product", "update", "failed to update product", err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info("product updated",
		slog.Int64("product_id", id),
		slog.Any("tag_ids", updated.TagIDs()))
	return updated, nil
}

func (s *productServiceImpl) update(
	ctx context.Context,
	products store.ProductStore,
	links store.ProductTagStore,
	id int64,
	patch ProductPatch,
	inTx bool,
) error {
	// Inside a transaction the row lock serializes concurrent updates, so two
	// requests adding the same tag cannot both see it as missing.
	var product *domain.Product
	var err error
	if inTx {
		product, err = products.GetForUpdate(ctx, id)
	} else {
		product, err = products.GetByID(ctx, id)
	}
	if err != nil {
		return err
	}

	patch.apply(product)
	if err := products.Update(ctx, product); err != nil {
		return err
	}

	if patch.TagIDs == nil {
		return nil
	}
	return s.syncTags(ctx, links, id, patch.TagIDs, inTx)
}

// syncTags reconciles the stored tag links of productID with desired. The
// remove step runs before the insert step and each is skipped when empty.
func (s *productServiceImpl) syncTags(
	ctx context.Context,
	links store.ProductTagStore,
	productID int64,
	desired []int64,
	inTx bool,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	current, err := links.ListByProducts(ctx, []int64{productID})
	if err != nil {
		return err
	}

	changes := tagsync.Plan(productID, desired, current)
	if changes.Empty() {
		log.Debug("product tags already in sync", slog.Int64("product_id", productID))
		return nil
	}

	if len(changes.ToRemove) > 0 {
		if _, err := links.DeleteByIDs(ctx, changes.ToRemove); err != nil {
			return &TagSyncError{ProductID: productID, Step: TagSyncStepRemove, Err: err}
		}
	}
	if len(changes.ToInsert) > 0 {
		if _, err := links.CreateMany(ctx, changes.ToInsert); err != nil {
			return &TagSyncError{
				ProductID:       productID,
				Step:            TagSyncStepInsert,
				RemoveCommitted: !inTx && len(changes.ToRemove) > 0,
				Err:             err,
			}
		}
	}

	log.Debug("product tags reconciled",
		slog.Int64("product_id", productID),
		slog.Int("inserted", len(changes.ToInsert)),
		slog.Int("removed", len(changes.ToRemove)),
		slog.Any("tag_ids", tagsync.Apply(current, changes)))
	return nil
}

// Delete implements ProductService.Delete
func (s *productServiceImpl) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return 0, NewServiceError("product", "delete", "failed to delete product", err)
	}

	log.Debug("product deleted", slog.Int64("product_id", id))
	return deleted, nil
}
