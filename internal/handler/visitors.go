package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/laurenz19/tourvisit/internal/service"
)

// CreateVisitorRequest is the POST /api/visitors payload. Any id in the
// body is ignored: the generated one wins.
type CreateVisitorRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// UpdateVisitorRequest is the PUT payload. Absent fields are preserved.
type UpdateVisitorRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// VisitorHandler handles visitor CRUD endpoints
type VisitorHandler struct {
	visitorService *service.VisitorService
	logger         *slog.Logger
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(visitorService *service.VisitorService, logger *slog.Logger) *VisitorHandler {
	return &VisitorHandler{visitorService: visitorService, logger: logger}
}

// List handles GET /api/visitors
func (h *VisitorHandler) List(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.visitorService.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visitors)
}

// Get handles GET /api/visitors/{id}
func (h *VisitorHandler) Get(w http.ResponseWriter, r *http.Request) {
	visitor, err := h.visitorService.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visitor)
}

// Create handles POST /api/visitors
func (h *VisitorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVisitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode visitor request", slog.String("error", err.Error()))
		respondMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	visitor, err := h.visitorService.Create(req.Name, req.Address)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visitor)
}

// Update handles PUT /api/visitors/{id}
func (h *VisitorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateVisitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	visitor, err := h.visitorService.Update(chi.URLParam(r, "id"), req.Name, req.Address)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visitor)
}

// Delete handles DELETE /api/visitors/{id}
func (h *VisitorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.visitorService.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "success")
}
