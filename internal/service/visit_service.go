package service

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/laurenz19/tourvisit/internal/domain"
	"github.com/laurenz19/tourvisit/internal/idgen"
	"github.com/laurenz19/tourvisit/internal/observability/metrics"
)

// VisitService handles visit CRUD, reference validation, and the per-site
// visitor itemization.
type VisitService struct {
	visits   domain.VisitRepository
	visitors domain.VisitorRepository
	sites    domain.SiteRepository
	counters domain.CounterRepository
	validate *validator.Validate
	logger   *slog.Logger
}

// NewVisitService creates a new visit service
func NewVisitService(
	visits domain.VisitRepository,
	visitors domain.VisitorRepository,
	sites domain.SiteRepository,
	counters domain.CounterRepository,
	logger *slog.Logger,
) *VisitService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisitService{
		visits:   visits,
		visitors: visitors,
		sites:    sites,
		counters: counters,
		validate: validator.New(),
		logger:   logger,
	}
}

// checkReferences verifies both foreign keys and reports exactly which
// ones are missing, so the client is told whether the visitor, the site,
// or both were not found.
func (s *VisitService) checkReferences(visitorID, siteID string) error {
	visitorOK, err := s.visitors.Exists(visitorID)
	if err != nil {
		return err
	}
	siteOK, err := s.sites.Exists(siteID)
	if err != nil {
		return err
	}

	switch {
	case !visitorOK && !siteOK:
		return domain.ErrVisitorAndSiteMissing
	case !siteOK:
		return domain.ErrSiteMissing
	case !visitorOK:
		return domain.ErrVisitorMissing
	}
	return nil
}

// Create validates both references, allocates a visit id, and stores the
// record. Any caller-supplied id is ignored.
func (s *VisitService) Create(visitorID, siteID string, duration int, dateVisit string) (*domain.Visit, error) {
	if err := s.checkReferences(visitorID, siteID); err != nil {
		return nil, err
	}

	nb, err := s.counters.Next("visits")
	if err != nil {
		return nil, err
	}

	visit := &domain.Visit{
		ID:        idgen.Generate(idgen.VisitPrefix, nb, idgen.VisitIDSize),
		VisitorID: visitorID,
		SiteID:    siteID,
		Duration:  duration,
		DateVisit: dateVisit,
	}
	if err := s.validate.Struct(visit); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	if err := s.visits.Create(visit); err != nil {
		return nil, err
	}

	metrics.ObserveCreate("visit")
	s.logger.Info("visit created",
		slog.String("id", visit.ID),
		slog.String("visitor_id", visit.VisitorID),
		slog.String("site_id", visit.SiteID),
	)
	return visit, nil
}

// Get returns the visit with the given id.
func (s *VisitService) Get(id string) (*domain.Visit, error) {
	return s.visits.GetByID(id)
}

// List returns all visits in insertion order.
func (s *VisitService) List() ([]*domain.Visit, error) {
	return s.visits.List()
}

// Update shallow-merges the provided fields onto the stored record, then
// re-validates that the (possibly new) references still exist.
func (s *VisitService) Update(id string, visitorID, siteID *string, duration *int, dateVisit *string) (*domain.Visit, error) {
	visit, err := s.visits.GetByID(id)
	if err != nil {
		return nil, err
	}

	if visitorID != nil {
		visit.VisitorID = *visitorID
	}
	if siteID != nil {
		visit.SiteID = *siteID
	}
	if duration != nil {
		visit.Duration = *duration
	}
	if dateVisit != nil {
		visit.DateVisit = *dateVisit
	}

	if err := s.checkReferences(visit.VisitorID, visit.SiteID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(visit); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	if err := s.visits.Update(visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// Delete removes a visit.
func (s *VisitService) Delete(id string) error {
	return s.visits.Delete(id)
}

// SiteLog produces one line item per visit of the site: the joined
// visitor, the visit date and duration, the site tarif, and the computed
// amount, plus the running total across all line items.
func (s *VisitService) SiteLog(siteID string) (*domain.VisitLog, error) {
	site, err := s.sites.GetByID(siteID)
	if err != nil {
		return nil, err
	}

	visits, err := s.visits.ListBySite(siteID)
	if err != nil {
		return nil, err
	}

	log := &domain.VisitLog{Data: []domain.VisitLogEntry{}}
	for _, visit := range visits {
		visitor, err := s.visitors.GetByID(visit.VisitorID)
		if err != nil {
			return nil, err
		}

		amount := site.Tarif * float64(visit.Duration)
		log.Data = append(log.Data, domain.VisitLogEntry{
			Visitor:  visitor,
			Date:     visit.DateVisit,
			Tarif:    site.Tarif,
			Duration: visit.Duration,
			Amount:   amount,
		})
		log.Total += amount
	}

	return log, nil
}
