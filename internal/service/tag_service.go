package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

// TagPatch holds the tag attributes a client asked to change.
// Nil fields are left untouched.
type TagPatch struct {
	Name *string
}

// TagService provides tag-related operations
type TagService interface {
	// List returns every tag with the products it labels.
	List(ctx context.Context) ([]*domain.Tag, error)

	// Get returns one tag with the products it labels.
	Get(ctx context.Context, id int64) (*domain.Tag, error)

	// Create stores a new tag.
	Create(ctx context.Context, name string) (*domain.Tag, error)

	// Update applies patch to an existing tag and returns the result.
	Update(ctx context.Context, id int64, patch TagPatch) (*domain.Tag, error)

	// Delete removes a tag, and with it every product association, returning
	// the number of tag rows removed.
	Delete(ctx context.Context, id int64) (int64, error)
}

// tagServiceImpl implements the TagService interface
type tagServiceImpl struct {
	tags   store.TagStore
	loader relationLoader
	logger *slog.Logger
}

// NewTagService creates a new TagService
// It returns an error if any of the required dependencies are nil.
func NewTagService(
	tags store.TagStore,
	products store.ProductStore,
	links store.ProductTagStore,
	logger *slog.Logger,
) (TagService, error) {
	if tags == nil {
		return nil, domain.NewValidationError("tags", "cannot be nil", domain.ErrValidation)
	}
	if products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}
	if links == nil {
		return nil, domain.NewValidationError("links", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &tagServiceImpl{
		tags:   tags,
		loader: relationLoader{products: products, links: links},
		logger: logger.With(slog.String("component", "tag_service")),
	}, nil
}

// List implements TagService.List
func (s *tagServiceImpl) List(ctx context.Context) ([]*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tags, err := s.tags.List(ctx, store.TagFilter{})
	if err != nil {
		log.Error("failed to list tags", slog.String("error", err.Error()))
		return nil, NewServiceError("tag", "list", "failed to list tags", err)
	}
	if err := s.loader.tagsWithProducts(ctx, tags); err != nil {
		log.Error("failed to load tag products", slog.String("error", err.Error()))
		return nil, NewServiceError("tag", "list", "failed to load products", err)
	}

	return tags, nil
}

// Get implements TagService.Get
func (s *tagServiceImpl) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("tag", "get", "failed to retrieve tag", err)
	}
	if err := s.loader.tagsWithProducts(ctx, []*domain.Tag{tag}); err != nil {
		return nil, NewServiceError("tag", "get", "failed to load products", err)
	}
	return tag, nil
}

// Create implements TagService.Create
func (s *tagServiceImpl) Create(ctx context.Context, name string) (*domain.Tag, error) {
	tag, err := domain.NewTag(name)
	if err != nil {
		return nil, err
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, NewServiceError("tag", "create", "failed to save tag", err)
	}
	return tag, nil
}

// Update implements TagService.Update
func (s *tagServiceImpl) Update(ctx context.Context, id int64, patch TagPatch) (*domain.Tag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("tag", "update", "failed to retrieve tag", err)
	}

	if patch.Name != nil {
		tag.Name = strings.TrimSpace(*patch.Name)
		if err := tag.Validate(); err != nil {
			return nil, err
		}
		if err := s.tags.Update(ctx, tag); err != nil {
			log.Error("failed to update tag",
				slog.String("error", err.Error()),
				slog.Int64("tag_id", id))
			return nil, NewServiceError("tag", "update", "failed to save tag", err)
		}
	}

	if err := s.loader.tagsWithProducts(ctx, []*domain.Tag{tag}); err != nil {
		return nil, NewServiceError("tag", "update", "failed to load products", err)
	}
	return tag, nil
}

// Delete implements TagService.Delete
func (s *tagServiceImpl) Delete(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.tags.Delete(ctx, id)
	if err != nil {
		return 0, NewServiceError("tag", "delete", "failed to delete tag", err)
	}
	return deleted, nil
}
