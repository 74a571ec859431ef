package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

// PostgresCounterRepository implements domain.CounterRepository. The
// increment-and-read happens in a single UPDATE ... RETURNING statement,
// so the database serializes concurrent allocations and two requests can
// never observe the same counter value.
type PostgresCounterRepository struct {
	db *sql.DB
}

// NewPostgresCounterRepository creates a new counter repository
func NewPostgresCounterRepository(db *sql.DB) *PostgresCounterRepository {
	return &PostgresCounterRepository{db: db}
}

// Next increments the counter for the resource and returns the new value.
func (r *PostgresCounterRepository) Next(resource string) (int64, error) {
	query := `
		UPDATE counters
		SET nb = nb + 1
		WHERE resource = $1
		RETURNING nb
	`

	var nb int64
	if err := r.db.QueryRow(query, resource).Scan(&nb); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("unknown counter resource %q", resource)
		}
		return 0, fmt.Errorf("failed to advance counter %q: %w", resource, err)
	}
	return nb, nil
}
