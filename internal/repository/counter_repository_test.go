package repository

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupCounterMock(t *testing.T) (*PostgresCounterRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresCounterRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCounterNext(t *testing.T) {
	repo, mock, cleanup := setupCounterMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE counters`)).
		WithArgs("visits").
		WillReturnRows(sqlmock.NewRows([]string{"nb"}).AddRow(int64(7)))

	nb, err := repo.Next("visits")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nb != 7 {
		t.Errorf("nb = %d, want 7", nb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCounterNextUnknownResource(t *testing.T) {
	repo, mock, cleanup := setupCounterMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE counters`)).
		WithArgs("bogus").
		WillReturnRows(sqlmock.NewRows([]string{"nb"}))

	if _, err := repo.Next("bogus"); err == nil {
		t.Errorf("expected error for unknown resource, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCounterNextQueryError(t *testing.T) {
	repo, mock, cleanup := setupCounterMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE counters`)).
		WithArgs("sites").
		WillReturnError(errors.New("connection reset"))

	if _, err := repo.Next("sites"); err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
