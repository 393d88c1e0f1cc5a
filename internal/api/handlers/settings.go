package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lenderdesk/lenderdesk/internal/api/middleware"
	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/repository"
)

// SettingsHandler handles integration setting HTTP requests
type SettingsHandler struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsRepo *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

// List handles GET /api/v1/settings
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsRepo.FindAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"settings": settings})
}

// Get handles GET /api/v1/settings/{provider}
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	setting, err := h.settingsRepo.FindByProvider(r.Context(), provider)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load setting")
		return
	}
	if setting == nil {
		respondError(w, http.StatusNotFound, "No settings for this provider")
		return
	}

	respondJSON(w, http.StatusOK, setting)
}

// Put handles PUT /api/v1/settings/{provider} (admin only)
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	var body struct {
		Enabled bool            `json:"enabled"`
		Config  json.RawMessage `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Config == nil {
		body.Config = json.RawMessage(`{}`)
	}

	setting := &domain.IntegrationSetting{
		Provider:  provider,
		Enabled:   body.Enabled,
		Config:    body.Config,
		UpdatedAt: time.Now(),
	}
	if session := middleware.GetSession(r.Context()); session != nil {
		setting.UpdatedBy = &session.Email
	}

	if err := h.settingsRepo.Upsert(r.Context(), setting); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	respondJSON(w, http.StatusOK, setting)
}
