package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/catalog-api/internal/api"
	apiMiddleware "github.com/phrazzld/catalog-api/internal/api/middleware"
	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/config"
)

type routeHandlers struct {
	categories *api.CategoryHandler
	products   *api.ProductHandler
	tags       *api.TagHandler
}

// newRouter creates the application router with middleware and the static
// route table. Anything unmatched, by path or by method, gets the Wrong
// Route page.
func newRouter(cfg config.ServerConfig, logger *slog.Logger, h routeHandlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(api.WrongRoute)
	r.MethodNotAllowed(api.WrongRoute)

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.categories.ListCategories)
			r.Post("/", h.categories.CreateCategory)
			r.Get("/{id}", h.categories.GetCategory)
			r.Put("/{id}", h.categories.UpdateCategory)
			r.Delete("/{id}", h.categories.DeleteCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.products.ListProducts)
			r.Post("/", h.products.CreateProduct)
			r.Get("/{id}", h.products.GetProduct)
			r.Put("/{id}", h.products.UpdateProduct)
			r.Delete("/{id}", h.products.DeleteProduct)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.tags.ListTags)
			r.Post("/", h.tags.CreateTag)
			r.Get("/{id}", h.tags.GetTag)
			r.Put("/{id}", h.tags.UpdateTag)
			r.Delete("/{id}", h.tags.DeleteTag)
		})
	})

	r.Get("/health", api.Health)

	return r
}
