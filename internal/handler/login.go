package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/laurenz19/tourvisit/internal/domain"
	"github.com/laurenz19/tourvisit/internal/service"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler handles user authentication
type LoginHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(authService *service.AuthService, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{authService: authService, logger: logger}
}

// Login handles POST /api/login. An unknown email is a 404, a wrong
// password a 400, matching the source behavior.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode login request", slog.String("error", err.Error()))
		respondMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "email and password required")
		return
	}

	tokens, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "user not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger.Warn("authentication failed", slog.String("email", req.Email))
			respondMessage(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}
