package service

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/laurenz19/tourvisit/internal/domain"
	"github.com/laurenz19/tourvisit/internal/idgen"
	"github.com/laurenz19/tourvisit/internal/observability/metrics"
)

// VisitorService handles visitor CRUD.
type VisitorService struct {
	visitors domain.VisitorRepository
	counters domain.CounterRepository
	validate *validator.Validate
	logger   *slog.Logger
}

// NewVisitorService creates a new visitor service
func NewVisitorService(visitors domain.VisitorRepository, counters domain.CounterRepository, logger *slog.Logger) *VisitorService {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisitorService{
		visitors: visitors,
		counters: counters,
		validate: validator.New(),
		logger:   logger,
	}
}

// Create allocates a visitor id and stores the record. Any caller-supplied
// id is ignored: the generated one wins.
func (s *VisitorService) Create(name, address string) (*domain.Visitor, error) {
	nb, err := s.counters.Next("visitors")
	if err != nil {
		return nil, err
	}

	visitor := &domain.Visitor{
		ID:      idgen.Generate(idgen.VisitorPrefix, nb, idgen.ShortIDSize),
		Name:    name,
		Address: address,
	}
	if err := s.validate.Struct(visitor); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	if err := s.visitors.Create(visitor); err != nil {
		return nil, err
	}

	metrics.ObserveCreate("visitor")
	s.logger.Info("visitor created", slog.String("id", visitor.ID))
	return visitor, nil
}

// Get returns the visitor with the given id.
func (s *VisitorService) Get(id string) (*domain.Visitor, error) {
	return s.visitors.GetByID(id)
}

// List returns all visitors in insertion order.
func (s *VisitorService) List() ([]*domain.Visitor, error) {
	return s.visitors.List()
}

// Update shallow-merges the provided fields onto the stored record: nil
// fields are preserved, non-nil fields overwrite.
func (s *VisitorService) Update(id string, name, address *string) (*domain.Visitor, error) {
	visitor, err := s.visitors.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		visitor.Name = *name
	}
	if address != nil {
		visitor.Address = *address
	}
	if err := s.validate.Struct(visitor); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	if err := s.visitors.Update(visitor); err != nil {
		return nil, err
	}
	return visitor, nil
}

// Delete removes the visitor and cascades to its visits.
func (s *VisitorService) Delete(id string) error {
	if err := s.visitors.Delete(id); err != nil {
		return err
	}
	metrics.ObserveCascadeDelete()
	s.logger.Info("visitor deleted", slog.String("id", id))
	return nil
}
