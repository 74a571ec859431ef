package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/laurenz19/tourvisit/internal/domain"
)

// PostgresVisitRepository implements domain.VisitRepository using PostgreSQL
type PostgresVisitRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresVisitRepository creates a new visit repository
func NewPostgresVisitRepository(db *sql.DB, logger *slog.Logger) *PostgresVisitRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVisitRepository{db: db, logger: logger}
}

// Create inserts a new visit
func (r *PostgresVisitRepository) Create(visit *domain.Visit) error {
	query := `
		INSERT INTO visits (id, visitor_id, site_id, duration, date_visit)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query, visit.ID, visit.VisitorID, visit.SiteID, visit.Duration, visit.DateVisit)
	if err != nil {
		r.logger.Error("failed to create visit",
			slog.String("id", visit.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

// GetByID retrieves a visit by id
func (r *PostgresVisitRepository) GetByID(id string) (*domain.Visit, error) {
	visit := &domain.Visit{}

	query := `
		SELECT id, visitor_id, site_id, duration, date_visit
		FROM visits
		WHERE id = $1
	`

	err := r.db.QueryRow(query, id).Scan(
		&visit.ID,
		&visit.VisitorID,
		&visit.SiteID,
		&visit.Duration,
		&visit.DateVisit,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}

	return visit, nil
}

// List returns all visits in insertion order
func (r *PostgresVisitRepository) List() ([]*domain.Visit, error) {
	return r.query(`
		SELECT id, visitor_id, site_id, duration, date_visit
		FROM visits
		ORDER BY created_at, id
	`)
}

// ListBySite returns all visits referencing the given site in insertion order
func (r *PostgresVisitRepository) ListBySite(siteID string) ([]*domain.Visit, error) {
	return r.query(`
		SELECT id, visitor_id, site_id, duration, date_visit
		FROM visits
		WHERE site_id = $1
		ORDER BY created_at, id
	`, siteID)
}

func (r *PostgresVisitRepository) query(query string, args ...any) ([]*domain.Visit, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	visits := []*domain.Visit{}
	for rows.Next() {
		visit := &domain.Visit{}
		err := rows.Scan(&visit.ID, &visit.VisitorID, &visit.SiteID, &visit.Duration, &visit.DateVisit)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		visits = append(visits, visit)
	}

	return visits, rows.Err()
}

// Update overwrites an existing visit
func (r *PostgresVisitRepository) Update(visit *domain.Visit) error {
	query := `
		UPDATE visits
		SET visitor_id = $1, site_id = $2, duration = $3, date_visit = $4
		WHERE id = $5
	`

	result, err := r.db.Exec(query, visit.VisitorID, visit.SiteID, visit.Duration, visit.DateVisit, visit.ID)
	if err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a visit
func (r *PostgresVisitRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
