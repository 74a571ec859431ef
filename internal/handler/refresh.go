package handler

import (
	"log/slog"
	"net/http"

	"github.com/laurenz19/tourvisit/internal/security/auth"
	"github.com/laurenz19/tourvisit/internal/service"
)

// RefreshResponse carries the newly minted access token
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// RefreshHandler reissues access tokens from refresh tokens
type RefreshHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewRefreshHandler creates a new refresh handler
func NewRefreshHandler(authService *service.AuthService, logger *slog.Logger) *RefreshHandler {
	return &RefreshHandler{authService: authService, logger: logger}
}

// Refresh handles POST /api/refreshToken. The bearer token is verified
// against the refresh secret; missing or invalid tokens are both 401.
func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, err := auth.ExtractToken(r.Header.Get("Authorization"))
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	accessToken, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RefreshResponse{AccessToken: accessToken})
}

// Logout handles POST /api/logout: it revokes the presented refresh token
// until its natural expiry. Mounted only when a denylist backend is
// configured.
func (h *RefreshHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := auth.ExtractToken(r.Header.Get("Authorization"))
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "logged out")
}
