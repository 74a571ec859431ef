package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/laurenz19/tourvisit/internal/domain"
)

// PostgresSiteRepository implements domain.SiteRepository using PostgreSQL
type PostgresSiteRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresSiteRepository creates a new site repository
func NewPostgresSiteRepository(db *sql.DB, logger *slog.Logger) *PostgresSiteRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSiteRepository{db: db, logger: logger}
}

// Create inserts a new site
func (r *PostgresSiteRepository) Create(site *domain.Site) error {
	query := `
		INSERT INTO sites (id, name, place, tarif)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.Exec(query, site.ID, site.Name, site.Place, site.Tarif); err != nil {
		r.logger.Error("failed to create site",
			slog.String("id", site.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create site: %w", err)
	}
	return nil
}

// GetByID retrieves a site by id
func (r *PostgresSiteRepository) GetByID(id string) (*domain.Site, error) {
	site := &domain.Site{}

	query := `
		SELECT id, name, place, tarif
		FROM sites
		WHERE id = $1
	`

	err := r.db.QueryRow(query, id).Scan(&site.ID, &site.Name, &site.Place, &site.Tarif)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get site: %w", err)
	}

	return site, nil
}

// List returns all sites in insertion order
func (r *PostgresSiteRepository) List() ([]*domain.Site, error) {
	query := `
		SELECT id, name, place, tarif
		FROM sites
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	sites := []*domain.Site{}
	for rows.Next() {
		site := &domain.Site{}
		if err := rows.Scan(&site.ID, &site.Name, &site.Place, &site.Tarif); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// Update overwrites an existing site
func (r *PostgresSiteRepository) Update(site *domain.Site) error {
	query := `
		UPDATE sites
		SET name = $1, place = $2, tarif = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(query, site.Name, site.Place, site.Tarif, site.ID)
	if err != nil {
		return fmt.Errorf("failed to update site: %w", err)
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

// Delete removes the site and every visit referencing it in one transaction.
func (r *PostgresSiteRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM visits WHERE site_id = $1`, id); err != nil {
		return fmt.Errorf("failed to cascade delete visits: %w", err)
	}

	return tx.Commit()
}

// Exists reports whether a site with the given id exists
func (r *PostgresSiteRepository) Exists(id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM sites WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check site existence: %w", err)
	}
	return exists, nil
}
