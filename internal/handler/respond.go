package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/laurenz19/tourvisit/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondError maps domain errors to status codes. Unrecognized failures
// become a 500 with the raw error surfaced in the body.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVisitorAndSiteMissing),
		errors.Is(err, domain.ErrSiteMissing),
		errors.Is(err, domain.ErrVisitorMissing):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrValidation):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, domain.ErrUnauthenticated):
		respondMessage(w, http.StatusUnauthorized, "unauthenticated")
	default:
		respondMessage(w, http.StatusInternalServerError, err.Error())
	}
}
