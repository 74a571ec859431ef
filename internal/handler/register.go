package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/laurenz19/tourvisit/internal/service"
)

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler handles user registration
type RegisterHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewRegisterHandler creates a new registration handler
func NewRegisterHandler(authService *service.AuthService, logger *slog.Logger) *RegisterHandler {
	return &RegisterHandler{authService: authService, logger: logger}
}

// Register handles POST /api/register. On success it returns the public
// user projection only: never the password or its hash.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode register request", slog.String("error", err.Error()))
		respondMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "username, email and password required")
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
