package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/api"
	"github.com/phrazzld/catalog-api/internal/config"
	"github.com/phrazzld/catalog-api/internal/platform/postgres"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/store"
)

// application holds the shared dependencies of the server and owns their
// cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	categoryStore   store.CategoryStore
	productStore    store.ProductStore
	tagStore        store.TagStore
	productTagStore store.ProductTagStore

	categoryService service.CategoryService
	productService  service.ProductService
	tagService      service.TagService
}

// newApplication wires stores and services over an open database handle.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.productStore = postgres.NewPostgresProductStore(db, logger)
	app.tagStore = postgres.NewPostgresTagStore(db, logger)
	app.productTagStore = postgres.NewPostgresProductTagStore(db, logger)

	var err error
	app.categoryService, err = service.NewCategoryService(app.categoryStore, app.productStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	app.tagService, err = service.NewTagService(app.tagStore, app.productStore, app.productTagStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag service: %w", err)
	}

	app.productService, err = service.NewProductService(
		db,
		app.productStore,
		app.categoryStore,
		app.tagStore,
		app.productTagStore,
		service.ProductServiceOptions{AtomicTagSync: cfg.Catalog.AtomicTagSync},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// handlers builds the HTTP handlers over the application's services.
func (app *application) handlers() routeHandlers {
	return routeHandlers{
		categories: api.NewCategoryHandler(app.categoryService, app.logger),
		products:   api.NewProductHandler(app.productService, app.logger),
		tags:       api.NewTagHandler(app.tagService, app.logger),
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	router := newRouter(app.config.Server, app.logger, app.handlers())

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}
