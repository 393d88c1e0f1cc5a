package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/service"
	"github.com/lenderdesk/lenderdesk/internal/validation"
)

// ProductHandler handles lender product HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles POST /api/v1/lenders/{lenderID}/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	lenderID := chi.URLParam(r, "lenderID")

	raw, err := decodeRawBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.ProductBody(raw); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.productService.Create(r.Context(), lenderID, raw)
	if err != nil {
		respondServiceError(w, err, "Failed to create product")
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

// ListByLender handles GET /api/v1/lenders/{lenderID}/products
func (h *ProductHandler) ListByLender(w http.ResponseWriter, r *http.Request) {
	lenderID := chi.URLParam(r, "lenderID")

	products, err := h.productService.ListByLender(r.Context(), lenderID)
	if err != nil {
		respondServiceError(w, err, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to load product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Update handles PUT /api/v1/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	raw, err := decodeRawBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.ProductBody(raw); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.productService.Update(r.Context(), id, raw)
	if err != nil {
		respondServiceError(w, err, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/v1/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	purge := r.URL.Query().Get("purge") == "true"

	if err := h.productService.Delete(r.Context(), id, purge); err != nil {
		respondServiceError(w, err, "Failed to delete product")
		return
	}

	status := domain.StatusDeactivated
	if purge {
		status = domain.StatusPurgedPendingDelete
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": string(status),
	})
}
