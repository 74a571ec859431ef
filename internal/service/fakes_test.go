package service

import (
	"context"
	"time"

	"github.com/laurenz19/tourvisit/internal/domain"
)

// In-memory repository fakes backing the service tests. Cascade deletes
// mirror the real repositories: removing a visitor or site also removes
// its visits.

type fakeCounterRepo struct {
	counts map[string]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counts: map[string]int64{}}
}

func (f *fakeCounterRepo) Next(resource string) (int64, error) {
	f.counts[resource]++
	return f.counts[resource], nil
}

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(u *domain.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type fakeVisitRepo struct {
	visits []*domain.Visit
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{}
}

func (f *fakeVisitRepo) Create(v *domain.Visit) error {
	f.visits = append(f.visits, v)
	return nil
}

func (f *fakeVisitRepo) GetByID(id string) (*domain.Visit, error) {
	for _, v := range f.visits {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVisitRepo) List() ([]*domain.Visit, error) {
	return f.visits, nil
}

func (f *fakeVisitRepo) ListBySite(siteID string) ([]*domain.Visit, error) {
	out := []*domain.Visit{}
	for _, v := range f.visits {
		if v.SiteID == siteID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVisitRepo) Update(visit *domain.Visit) error {
	for i, v := range f.visits {
		if v.ID == visit.ID {
			f.visits[i] = visit
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeVisitRepo) Delete(id string) error {
	for i, v := range f.visits {
		if v.ID == id {
			f.visits = append(f.visits[:i], f.visits[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeVisitRepo) removeWhere(match func(*domain.Visit) bool) {
	kept := f.visits[:0]
	for _, v := range f.visits {
		if !match(v) {
			kept = append(kept, v)
		}
	}
	f.visits = kept
}

type fakeVisitorRepo struct {
	visitors []*domain.Visitor
	visits   *fakeVisitRepo
}

func newFakeVisitorRepo(visits *fakeVisitRepo) *fakeVisitorRepo {
	return &fakeVisitorRepo{visits: visits}
}

func (f *fakeVisitorRepo) Create(v *domain.Visitor) error {
	f.visitors = append(f.visitors, v)
	return nil
}

func (f *fakeVisitorRepo) GetByID(id string) (*domain.Visitor, error) {
	for _, v := range f.visitors {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVisitorRepo) List() ([]*domain.Visitor, error) {
	return f.visitors, nil
}

func (f *fakeVisitorRepo) Update(visitor *domain.Visitor) error {
	for i, v := range f.visitors {
		if v.ID == visitor.ID {
			f.visitors[i] = visitor
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeVisitorRepo) Delete(id string) error {
	for i, v := range f.visitors {
		if v.ID == id {
			f.visitors = append(f.visitors[:i], f.visitors[i+1:]...)
			if f.visits != nil {
				f.visits.removeWhere(func(visit *domain.Visit) bool { return visit.VisitorID == id })
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeVisitorRepo) Exists(id string) (bool, error) {
	_, err := f.GetByID(id)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeSiteRepo struct {
	sites  []*domain.Site
	visits *fakeVisitRepo
}

func newFakeSiteRepo(visits *fakeVisitRepo) *fakeSiteRepo {
	return &fakeSiteRepo{visits: visits}
}

func (f *fakeSiteRepo) Create(s *domain.Site) error {
	f.sites = append(f.sites, s)
	return nil
}

func (f *fakeSiteRepo) GetByID(id string) (*domain.Site, error) {
	for _, s := range f.sites {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSiteRepo) List() ([]*domain.Site, error) {
	return f.sites, nil
}

func (f *fakeSiteRepo) Update(site *domain.Site) error {
	for i, s := range f.sites {
		if s.ID == site.ID {
			f.sites[i] = site
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSiteRepo) Delete(id string) error {
	for i, s := range f.sites {
		if s.ID == id {
			f.sites = append(f.sites[:i], f.sites[i+1:]...)
			if f.visits != nil {
				f.visits.removeWhere(func(visit *domain.Visit) bool { return visit.SiteID == id })
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSiteRepo) Exists(id string) (bool, error) {
	_, err := f.GetByID(id)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakeDenylist struct {
	revoked map[string]time.Time
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{revoked: map[string]time.Time{}}
}

func (f *fakeDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	f.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (f *fakeDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	until, ok := f.revoked[token]
	return ok && time.Now().Before(until), nil
}
