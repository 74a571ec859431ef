package service

import (
	"errors"
	"testing"

	"github.com/laurenz19/tourvisit/internal/domain"
)

func newSiteFixture() (*SiteService, *fakeSiteRepo, *fakeVisitRepo) {
	visits := newFakeVisitRepo()
	sites := newFakeSiteRepo(visits)
	return NewSiteService(sites, visits, newFakeCounterRepo(), nil), sites, visits
}

func TestSiteCreateMintsSequentialIDs(t *testing.T) {
	s, _, _ := newSiteFixture()

	first, err := s.Create("Rova", "Antananarivo", 1000)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := s.Create("Isalo", "Ranohira", 2500)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if first.ID != "S0001" || second.ID != "S0002" {
		t.Fatalf("ids = %q, %q; want S0001, S0002", first.ID, second.ID)
	}
}

func TestSiteCreateRejectsNegativeTarif(t *testing.T) {
	s, _, _ := newSiteFixture()

	_, err := s.Create("Rova", "Antananarivo", -5)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestSiteUpdatePreservesAbsentFields(t *testing.T) {
	s, _, _ := newSiteFixture()

	site, err := s.Create("Rova", "Antananarivo", 1000)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newTarif := 1500.0
	updated, err := s.Update(site.ID, nil, nil, &newTarif)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Name != "Rova" || updated.Place != "Antananarivo" {
		t.Fatalf("absent fields were not preserved: %+v", updated)
	}
	if updated.Tarif != 1500 {
		t.Fatalf("tarif = %v, want 1500", updated.Tarif)
	}
}

func TestSiteUpdateNotFound(t *testing.T) {
	s, _, _ := newSiteFixture()

	name := "Rova"
	_, err := s.Update("S9999", &name, nil, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReportZeroVisits(t *testing.T) {
	s, _, _ := newSiteFixture()

	if _, err := s.Create("Rova", "Antananarivo", 1000); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	report, err := s.Report()
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("report length = %d, want 1", len(report))
	}
	if report[0].NbVisits != 0 || report[0].Total != 0 {
		t.Fatalf("report = %+v, want nbVisits 0 and total 0", report[0])
	}
}

func TestReportSumsTarifTimesDuration(t *testing.T) {
	s, _, visits := newSiteFixture()

	site, err := s.Create("Rova", "Antananarivo", 1000)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	visits.Create(&domain.Visit{ID: "VIS00001", VisitorID: "V0001", SiteID: site.ID, Duration: 2, DateVisit: "2021-05-01"})
	visits.Create(&domain.Visit{ID: "VIS00002", VisitorID: "V0002", SiteID: site.ID, Duration: 3, DateVisit: "2021-05-02"})

	report, err := s.Report()
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if report[0].NbVisits != 2 {
		t.Fatalf("nbVisits = %d, want 2", report[0].NbVisits)
	}
	if report[0].Total != 5000 {
		t.Fatalf("total = %v, want 5000", report[0].Total)
	}
}

func TestSiteDeleteCascadesToVisits(t *testing.T) {
	s, _, visits := newSiteFixture()

	site, err := s.Create("Rova", "Antananarivo", 1000)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	visits.Create(&domain.Visit{ID: "VIS00001", VisitorID: "V0001", SiteID: site.ID, Duration: 2, DateVisit: "2021-05-01"})

	if err := s.Delete(site.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	remaining, _ := visits.ListBySite(site.ID)
	if len(remaining) != 0 {
		t.Fatalf("expected no visits after cascade, got %d", len(remaining))
	}
}
