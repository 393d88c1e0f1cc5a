package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/service"
	"github.com/lenderdesk/lenderdesk/internal/validation"
)

// LenderHandler handles lender-related HTTP requests
type LenderHandler struct {
	lenderService *service.LenderService
}

// NewLenderHandler creates a new lender handler
func NewLenderHandler(lenderService *service.LenderService) *LenderHandler {
	return &LenderHandler{lenderService: lenderService}
}

// Create handles POST /api/v1/lenders. The body may arrive in any of the
// historical shapes; it is reconciled before persistence.
func (h *LenderHandler) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeRawBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.LenderBody(raw); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lender, err := h.lenderService.Create(r.Context(), raw)
	if err != nil {
		respondServiceError(w, err, "Failed to create lender")
		return
	}

	respondJSON(w, http.StatusCreated, lender)
}

// List handles GET /api/v1/lenders
func (h *LenderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.RecordStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown status filter")
		return
	}
	country := domain.Country(r.URL.Query().Get("country"))

	lenders, err := h.lenderService.List(r.Context(), status, country)
	if err != nil {
		respondServiceError(w, err, "Failed to list lenders")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"lenders": lenders,
		"count":   len(lenders),
	})
}

// Get handles GET /api/v1/lenders/{id}
func (h *LenderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lender, err := h.lenderService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to load lender")
		return
	}

	respondJSON(w, http.StatusOK, lender)
}

// Update handles PUT /api/v1/lenders/{id}
func (h *LenderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	raw, err := decodeRawBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.LenderBody(raw); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lender, err := h.lenderService.Update(r.Context(), id, raw)
	if err != nil {
		respondServiceError(w, err, "Failed to update lender")
		return
	}

	respondJSON(w, http.StatusOK, lender)
}

// Delete handles DELETE /api/v1/lenders/{id}. Plain delete deactivates;
// ?purge=true marks the record for physical removal.
func (h *LenderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	purge := r.URL.Query().Get("purge") == "true"

	if err := h.lenderService.Delete(r.Context(), id, purge); err != nil {
		respondServiceError(w, err, "Failed to delete lender")
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

// Import handles POST /api/v1/lenders/import: a batch of legacy records of
// mixed shapes run through the reconciliation seam.
func (h *LenderHandler) Import(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Records []map[string]interface{} `json:"records"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body.Records) == 0 {
		respondError(w, http.StatusBadRequest, "At least one record is required")
		return
	}

	outcomes := h.lenderService.Import(r.Context(), body.Records)

	imported := 0
	for _, outcome := range outcomes {
		if outcome.Error == "" {
			imported++
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"imported": imported,
		"failed":   len(outcomes) - imported,
		"outcomes": outcomes,
	})
}
