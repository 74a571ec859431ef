package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/laurenz19/tourvisit/internal/domain"
)

// PostgresVisitorRepository implements domain.VisitorRepository using PostgreSQL
type PostgresVisitorRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresVisitorRepository creates a new visitor repository
func NewPostgresVisitorRepository(db *sql.DB, logger *slog.Logger) *PostgresVisitorRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVisitorRepository{db: db, logger: logger}
}

// Create inserts a new visitor
func (r *PostgresVisitorRepository) Create(visitor *domain.Visitor) error {
	query := `
		INSERT INTO visitors (id, name, address)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.Exec(query, visitor.ID, visitor.Name, visitor.Address); err != nil {
		r.logger.Error("failed to create visitor",
			slog.String("id", visitor.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create visitor: %w", err)
	}
	return nil
}

// GetByID retrieves a visitor by id
func (r *PostgresVisitorRepository) GetByID(id string) (*domain.Visitor, error) {
	visitor := &domain.Visitor{}

	query := `
		SELECT id, name, address
		FROM visitors
		WHERE id = $1
	`

	err := r.db.QueryRow(query, id).Scan(&visitor.ID, &visitor.Name, &visitor.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get visitor: %w", err)
	}

	return visitor, nil
}

// List returns all visitors in insertion order
func (r *PostgresVisitorRepository) List() ([]*domain.Visitor, error) {
	query := `
		SELECT id, name, address
		FROM visitors
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}
	defer rows.Close()

	visitors := []*domain.Visitor{}
	for rows.Next() {
		visitor := &domain.Visitor{}
		if err := rows.Scan(&visitor.ID, &visitor.Name, &visitor.Address); err != nil {
			return nil, fmt.Errorf("failed to scan visitor: %w", err)
		}
		visitors = append(visitors, visitor)
	}

	return visitors, rows.Err()
}

// Update overwrites an existing visitor
func (r *PostgresVisitorRepository) Update(visitor *domain.Visitor) error {
	query := `
		UPDATE visitors
		SET name = $1, address = $2
		WHERE id = $3
	`

	result, err := r.db.Exec(query, visitor.Name, visitor.Address, visitor.ID)
	if err != nil {
		return fmt.Errorf("failed to update visitor: %w", err)
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

// Delete removes the visitor and every visit referencing it in one
// transaction, so a failure mid-cascade leaves no dangling state.
func (r *PostgresVisitorRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM visitors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete visitor: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM visits WHERE visitor_id = $1`, id); err != nil {
		return fmt.Errorf("failed to cascade delete visits: %w", err)
	}

	return tx.Commit()
}

// Exists reports whether a visitor with the given id exists
func (r *PostgresVisitorRepository) Exists(id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM visitors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check visitor existence: %w", err)
	}
	return exists, nil
}
