package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/laurenz19/tourvisit/internal/service"
)

// CreateVisitRequest is the POST /api/visits payload. Both references are
// checked against the store before the visit is written.
type CreateVisitRequest struct {
	VisitorID string `json:"visitor_id"`
	SiteID    string `json:"site_id"`
	Duration  int    `json:"duration"`
	DateVisit string `json:"date_visit"`
}

// UpdateVisitRequest is the PUT payload. Absent fields are preserved; the
// merged record's references must still exist.
type UpdateVisitRequest struct {
	VisitorID *string `json:"visitor_id"`
	SiteID    *string `json:"site_id"`
	Duration  *int    `json:"duration"`
	DateVisit *string `json:"date_visit"`
}

// VisitHandler handles visit CRUD endpoints and the per-site itemization
type VisitHandler struct {
	visitService *service.VisitService
	logger       *slog.Logger
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visitService *service.VisitService, logger *slog.Logger) *VisitHandler {
	return &VisitHandler{visitService: visitService, logger: logger}
}

// List handles GET /api/visits
func (h *VisitHandler) List(w http.ResponseWriter, r *http.Request) {
	visits, err := h.visitService.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visits)
}

// Get handles GET /api/visits/{id}
func (h *VisitHandler) Get(w http.ResponseWriter, r *http.Request) {
	visit, err := h.visitService.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visit)
}

// SiteLog handles GET /api/visits/sites/{id}: one line item per visit of
// the site with the joined visitor and computed amount, plus the total.
func (h *VisitHandler) SiteLog(w http.ResponseWriter, r *http.Request) {
	log, err := h.visitService.SiteLog(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, log)
}

// Create handles POST /api/visits
func (h *VisitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode visit request", slog.String("error", err.Error()))
		respondMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	visit, err := h.visitService.Create(req.VisitorID, req.SiteID, req.Duration, req.DateVisit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visit)
}

// Update handles PUT /api/visits/{id}
func (h *VisitHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	visit, err := h.visitService.Update(chi.URLParam(r, "id"), req.VisitorID, req.SiteID, req.Duration, req.DateVisit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visit)
}

// Delete handles DELETE /api/visits/{id}
func (h *VisitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.visitService.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "success")
}
