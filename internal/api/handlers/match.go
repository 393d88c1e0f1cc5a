package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/service"
)

// MatchHandler handles applicant matching HTTP requests
type MatchHandler struct {
	matchingService *service.MatchingService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchingService *service.MatchingService) *MatchHandler {
	return &MatchHandler{matchingService: matchingService}
}

// Match handles POST /api/v1/match: evaluates an applicant profile against
// every active product.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var profile domain.ApplicantProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.matchingService.Match(r.Context(), &profile)
	if err != nil {
		respondServiceError(w, err, "Failed to run matching")
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// Evaluate handles POST /api/v1/products/{id}/evaluate: one product's rules
// against one applicant profile.
func (h *MatchHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var profile domain.ApplicantProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	match, err := h.matchingService.Evaluate(r.Context(), id, &profile)
	if err != nil {
		respondServiceError(w, err, "Failed to evaluate product")
		return
	}

	respondJSON(w, http.StatusOK, match)
}
