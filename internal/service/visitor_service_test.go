package service

import (
	"errors"
	"testing"

	"github.com/laurenz19/tourvisit/internal/domain"
)

func newVisitorFixture() (*VisitorService, *fakeVisitorRepo, *fakeVisitRepo) {
	visits := newFakeVisitRepo()
	visitors := newFakeVisitorRepo(visits)
	return NewVisitorService(visitors, newFakeCounterRepo(), nil), visitors, visits
}

func TestVisitorCreate(t *testing.T) {
	s, _, _ := newVisitorFixture()

	visitor, err := s.Create("Sambany Michel", "Tanambao, Fianarantsoa")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if visitor.ID != "V0001" {
		t.Fatalf("id = %q, want V0001", visitor.ID)
	}
}

func TestVisitorCreateRequiresFields(t *testing.T) {
	s, _, _ := newVisitorFixture()

	_, err := s.Create("", "Tanambao")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestVisitorIDsNeverReused(t *testing.T) {
	s, _, _ := newVisitorFixture()

	first, err := s.Create("Sambany", "Fianarantsoa")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.Delete(first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	second, err := s.Create("Rakoto", "Toliara")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.ID != "V0002" {
		t.Fatalf("id = %q, want V0002 (counter must not rewind on delete)", second.ID)
	}
}

func TestVisitorDeleteCascadesToVisits(t *testing.T) {
	s, _, visits := newVisitorFixture()

	visitor, err := s.Create("Sambany", "Fianarantsoa")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	visits.Create(&domain.Visit{ID: "VIS00001", VisitorID: visitor.ID, SiteID: "S0001", Duration: 2, DateVisit: "2021-05-01"})

	if err := s.Delete(visitor.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	all, _ := visits.List()
	if len(all) != 0 {
		t.Fatalf("expected cascade to remove visits, got %d", len(all))
	}
}

func TestVisitorDeleteNotFound(t *testing.T) {
	s, _, _ := newVisitorFixture()

	if err := s.Delete("V9999"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
