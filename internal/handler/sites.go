package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/laurenz19/tourvisit/internal/service"
)

// CreateSiteRequest is the POST /api/sites payload.
type CreateSiteRequest struct {
	Name  string  `json:"name"`
	Place string  `json:"place"`
	Tarif float64 `json:"tarif"`
}

// UpdateSiteRequest is the PUT payload. Absent fields are preserved;
// typed decoding rejects schema-violating values (a string tarif is a
// 400, not a silently stored corruption).
type UpdateSiteRequest struct {
	Name  *string  `json:"name"`
	Place *string  `json:"place"`
	Tarif *float64 `json:"tarif"`
}

// SiteHandler handles site CRUD endpoints and the revenue report
type SiteHandler struct {
	siteService *service.SiteService
	logger      *slog.Logger
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(siteService *service.SiteService, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{siteService: siteService, logger: logger}
}

// List handles GET /api/sites
func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.siteService.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sites)
}

// Report handles GET /api/sites/all: per-site visit counts and revenue.
func (h *SiteHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.siteService.Report()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Get handles GET /api/sites/{id}
func (h *SiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	site, err := h.siteService.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, site)
}

// Create handles POST /api/sites
func (h *SiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode site request", slog.String("error", err.Error()))
		respondMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	site, err := h.siteService.Create(req.Name, req.Place, req.Tarif)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, site)
}

// Update handles PUT /api/sites/{id}
func (h *SiteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	site, err := h.siteService.Update(chi.URLParam(r, "id"), req.Name, req.Place, req.Tarif)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, site)
}

// Delete handles DELETE /api/sites/{id}
func (h *SiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.siteService.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "success")
}
