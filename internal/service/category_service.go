package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

// CategoryPatch holds the category attributes a client asked to change.
// Nil fields are left untouched.
type CategoryPatch struct {
	Name *string
}

// CategoryService provides category-related operations
type CategoryService interface {
	// List returns every category with its products.
	List(ctx context.Context) ([]*domain.Category, error)

	// Get returns one category with its products.
	Get(ctx context.Context, id int64) (*domain.Category, error)

	// Create stores a new category.
	Create(ctx context.Context, name string) (*domain.Category, error)

	// Update applies patch to an existing category and returns the result.
	Update(ctx context.Context, id int64, patch CategoryPatch) (*domain.Category, error)

	// Delete removes a category and returns the number of rows removed.
	Delete(ctx context.Context, id int64) (int64, error)
}

// categoryServiceImpl implements the CategoryService interface
type categoryServiceImpl struct {
	categories store.CategoryStore
	loader     relationLoader
	logger     *slog.Logger
}

// NewCategoryService creates a new CategoryService
// It returns an error if any of the required dependencies are nil.
func NewCategoryService(
	categories store.CategoryStore,
	products store.ProductStore,
	logger *slog.Logger,
) (CategoryService, error) {
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &categoryServiceImpl{
		categories: categories,
		loader:     relationLoader{products: products},
		logger:     logger.With(slog.String("component", "category_service")),
	}, nil
}

// List implements CategoryService.List
func (s *categoryServiceImpl) List(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	categories, err := s.categories.List(ctx, store.CategoryFilter{})
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, NewServiceError("category", "list", "failed to list categories", err)
	}
	if err := s.loader.categoriesWithProducts(ctx, categories); err != nil {
		log.Error("failed to load category products", slog.String("error", err.Error()))
		return nil, NewServiceError("category", "list", "failed to load products", err)
	}

	return categories, nil
}

// Get implements CategoryService.Get
func (s *categoryServiceImpl) Get(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			log.Error("failed to get category",
				slog.String("error", err.Error()),
				slog.Int64("category_id", id))
		}
		return nil, NewServiceError("category", "get", "failed to retrieve category", err)
	}
	if err := s.loader.categoriesWithProducts(ctx, []*domain.Category{category}); err != nil {
		return nil, NewServiceError("category", "get", "failed to load products", err)
	}

	return category, nil
}

// Create implements CategoryService.Create
func (s *categoryServiceImpl) Create(ctx context.Context, name string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(name)
	if err != nil {
		log.Debug("invalid category", slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, NewServiceError("category", "create", "failed to save category", err)
	}

	log.Debug("category created", slog.Int64("category_id", category.ID))
	return category, nil
}

// Update implements CategoryService.Update
func (s *categoryServiceImpl) Update(ctx context.Context, id int64, patch CategoryPatch) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("category", "update", "failed to retrieve category", err)
	}

	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
		if err := category.Validate(); err != nil {
			return nil, err
		}
		if err := s.categories.Update(ctx, category); err != nil {
			log.Error("failed to update category",
				slog.String("error", err.Error()),
				slog.Int64("category_id", id))
			return nil, NewServiceError("category", "update", "failed to save category", err)
		}
	}

	if err := s.loader.categoriesWithProducts(ctx, []*domain.Category{category}); err != nil {
		return nil, NewServiceError("category", "update", "failed to load products", err)
	}
	return category, nil
}

// Delete implements CategoryService.Delete
func (s *categoryServiceImpl) Delete(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return 0, NewServiceError("category", "delete", "failed to delete category", err)
	}
	return deleted, nil
}
