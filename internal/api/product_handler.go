package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if productService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("productService cannot be nil for ProductHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// ListProducts handles GET /api/products
// Every product includes its category and tags.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// CreateProduct handles POST /api/products
// The body may carry tagIds to link the new product to existing tags.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productService.Create(r.Context(), service.ProductInput{
		Name:       req.Name,
		Price:      *req.Price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		h.handleProductError(w, r, log, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/{id}
// When tagIds is present the product's tags are reconciled to exactly that set.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productService.Update(r.Context(), id, service.ProductPatch{
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		h.handleProductError(w, r, log, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathID(w, r, log)
	if !ok {
		return
	}

	deleted, err := h.productService.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{Deleted: deleted})
}

// handleProductError logs tag reconciliation failures with their step before
// writing the usual error response.
func (h *ProductHandler) handleProductError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var syncErr *service.TagSyncError
	if errors.As(err, &syncErr) {
		log.Warn("product tag sync failed",
			slog.Int64("product_id", syncErr.ProductID),
			slog.String("step", string(syncErr.Step)),
			slog.Bool("remove_committed", syncErr.RemoveCommitted))
	}
	HandleAPIError(w, r, err)
}
