package service

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/laurenz19/tourvisit/internal/domain"
	"github.com/laurenz19/tourvisit/internal/idgen"
	"github.com/laurenz19/tourvisit/internal/observability/metrics"
)

// SiteService handles site CRUD and the per-site revenue report.
type SiteService struct {
	sites    domain.SiteRepository
	visits   domain.VisitRepository
	counters domain.CounterRepository
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSiteService creates a new site service
func NewSiteService(
	sites domain.SiteRepository,
	visits domain.VisitRepository,
	counters domain.CounterRepository,
	logger *slog.Logger,
) *SiteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SiteService{
		sites:    sites,
		visits:   visits,
		counters: counters,
		validate: validator.New(),
		logger:   logger,
	}
}

// Create allocates a site id and stores the record.
func (s *SiteService) Create(name, place string, tarif float64) (*domain.Site, error) {
	nb, err := s.counters.Next("sites")
	if err != nil {
		return nil, err
	}

	site := &domain.Site{
		ID:    idgen.Generate(idgen.SitePrefix, nb, idgen.ShortIDSize),
		Name:  name,
		Place: place,
		Tarif: tarif,
	}
	if err := s.validate.Struct(site); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	if err := s.sites.Create(site); err != nil {
		return nil, err
	}

	metrics.ObserveCreate("site")
	s.logger.Info("site created", slog.String("id", site.ID))
	return site, nil
}

// Get returns the site with the given id.
func (s *SiteService) Get(id string) (*domain.Site, error) {
	return s.sites.GetByID(id)
}

// List returns all sites in insertion order.
func (s *SiteService) List() ([]*domain.Site, error) {
	return s.sites.List()
}

// Update shallow-merges the provided fields onto the stored record.
func (s *SiteService) Update(id string, name, place *string, tarif *float64) (*domain.Site, error) {
	site, err := s.sites.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		site.Name = *name
	}
	if place != nil {
		site.Place = *place
	}
	if tarif != nil {
		site.Tarif = *tarif
	}
	if err := s.validate.Struct(site); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	if err := s.sites.Update(site); err != nil {
		return nil, err
	}
	return site, nil
}

// Delete removes the site and cascades to its visits.
func (s *SiteService) Delete(id string) error {
	if err := s.sites.Delete(id); err != nil {
		return err
	}
	metrics.ObserveCascadeDelete()
	s.logger.Info("site deleted", slog.String("id", id))
	return nil
}

// Report computes, for every site, the number of visits and the revenue
// they represent (sum of tarif x duration). Computed on demand; sites
// with no visits report zero for both.
func (s *SiteService) Report() ([]domain.SiteReport, error) {
	sites, err := s.sites.List()
	if err != nil {
		return nil, err
	}

	report := []domain.SiteReport{}
	for _, site := range sites {
		visits, err := s.visits.ListBySite(site.ID)
		if err != nil {
			return nil, err
		}

		entry := domain.SiteReport{Name: site.Name}
		for _, visit := range visits {
			entry.Total += site.Tarif * float64(visit.Duration)
			entry.NbVisits++
		}
		report = append(report, entry)
	}

	return report, nil
}
