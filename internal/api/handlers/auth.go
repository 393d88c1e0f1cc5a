package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/service"
)

// AuthHandler handles staff authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	response, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, response)
}
