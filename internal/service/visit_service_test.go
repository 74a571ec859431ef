package service

import (
	"errors"
	"testing"

	"github.com/laurenz19/tourvisit/internal/domain"
)

type visitFixture struct {
	svc      *VisitService
	visits   *fakeVisitRepo
	visitors *fakeVisitorRepo
	sites    *fakeSiteRepo
}

func newVisitFixture(t *testing.T) *visitFixture {
	t.Helper()
	visits := newFakeVisitRepo()
	visitors := newFakeVisitorRepo(visits)
	sites := newFakeSiteRepo(visits)

	visitors.Create(&domain.Visitor{ID: "V0001", Name: "Sambany", Address: "Fianarantsoa"})
	sites.Create(&domain.Site{ID: "S0001", Name: "Rova", Place: "Antananarivo", Tarif: 1000})

	return &visitFixture{
		svc:      NewVisitService(visits, visitors, sites, newFakeCounterRepo(), nil),
		visits:   visits,
		visitors: visitors,
		sites:    sites,
	}
}

func TestVisitCreate(t *testing.T) {
	f := newVisitFixture(t)

	visit, err := f.svc.Create("V0001", "S0001", 2, "2021-05-01")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if visit.ID != "VIS00001" {
		t.Fatalf("id = %q, want VIS00001", visit.ID)
	}
}

func TestVisitCreateMissingReferences(t *testing.T) {
	f := newVisitFixture(t)

	tests := []struct {
		name      string
		visitorID string
		siteID    string
		want      error
	}{
		{"site missing", "V0001", "S9999", domain.ErrSiteMissing},
		{"visitor missing", "V9999", "S0001", domain.ErrVisitorMissing},
		{"both missing", "V9999", "S9999", domain.ErrVisitorAndSiteMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(tt.visitorID, tt.siteID, 2, "2021-05-01")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVisitCreateRejectsZeroDuration(t *testing.T) {
	f := newVisitFixture(t)

	_, err := f.svc.Create("V0001", "S0001", 0, "2021-05-01")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestVisitUpdateRevalidatesReferences(t *testing.T) {
	f := newVisitFixture(t)

	visit, err := f.svc.Create("V0001", "S0001", 2, "2021-05-01")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ghost := "S9999"
	_, err = f.svc.Update(visit.ID, nil, &ghost, nil, nil)
	if !errors.Is(err, domain.ErrSiteMissing) {
		t.Fatalf("err = %v, want ErrSiteMissing", err)
	}
}

func TestVisitUpdatePreservesAbsentFields(t *testing.T) {
	f := newVisitFixture(t)

	visit, err := f.svc.Create("V0001", "S0001", 2, "2021-05-01")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	duration := 5
	updated, err := f.svc.Update(visit.ID, nil, nil, &duration, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.VisitorID != "V0001" || updated.SiteID != "S0001" || updated.DateVisit != "2021-05-01" {
		t.Fatalf("absent fields were not preserved: %+v", updated)
	}
	if updated.Duration != 5 {
		t.Fatalf("duration = %d, want 5", updated.Duration)
	}
}

func TestVisitUpdateNotFound(t *testing.T) {
	f := newVisitFixture(t)

	duration := 5
	_, err := f.svc.Update("VIS99999", nil, nil, &duration, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSiteLog(t *testing.T) {
	f := newVisitFixture(t)

	f.visitors.Create(&domain.Visitor{ID: "V0002", Name: "Rakoto", Address: "Toliara"})
	if _, err := f.svc.Create("V0001", "S0001", 2, "2021-05-01"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.svc.Create("V0002", "S0001", 3, "2021-05-02"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	log, err := f.svc.SiteLog("S0001")
	if err != nil {
		t.Fatalf("site log failed: %v", err)
	}

	if len(log.Data) != 2 {
		t.Fatalf("entries = %d, want 2", len(log.Data))
	}
	if log.Data[0].Amount != 2000 || log.Data[1].Amount != 3000 {
		t.Fatalf("amounts = %v, %v; want 2000, 3000", log.Data[0].Amount, log.Data[1].Amount)
	}
	if log.Total != 5000 {
		t.Fatalf("total = %v, want 5000", log.Total)
	}
	if log.Data[0].Visitor == nil || log.Data[0].Visitor.Name != "Sambany" {
		t.Fatalf("expected joined visitor, got %+v", log.Data[0].Visitor)
	}
	if log.Data[0].Tarif != 1000 {
		t.Fatalf("tarif = %v, want 1000", log.Data[0].Tarif)
	}
}

func TestSiteLogUnknownSite(t *testing.T) {
	f := newVisitFixture(t)

	_, err := f.svc.SiteLog("S9999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSiteLogEmptySite(t *testing.T) {
	f := newVisitFixture(t)

	log, err := f.svc.SiteLog("S0001")
	if err != nil {
		t.Fatalf("site log failed: %v", err)
	}
	if len(log.Data) != 0 || log.Total != 0 {
		t.Fatalf("expected empty log, got %+v", log)
	}
}
