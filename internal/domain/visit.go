package domain

// Visit records a visitor spending a number of days at a site. Both
// references must exist when the visit is written; later deletes of the
// visitor or site cascade to their visits instead of leaving dangling ids.
type Visit struct {
	ID        string `json:"id" validate:"required"` // generated, prefix "VIS", width 8
	VisitorID string `json:"visitor_id" validate:"required"`
	SiteID    string `json:"site_id" validate:"required"`
	Duration  int    `json:"duration" validate:"gte=1"` // days
	DateVisit string `json:"date_visit" validate:"required"`
}

// VisitLogEntry is one line of the per-site visitor itemization: the
// joined visitor, the visit date and duration, the site tarif, and the
// computed amount (tarif x duration).
type VisitLogEntry struct {
	Visitor  *Visitor `json:"visitor"`
	Date     string   `json:"date"`
	Tarif    float64  `json:"tarif"`
	Duration int      `json:"duration"`
	Amount   float64  `json:"amount"`
}

// VisitLog is the full itemization for one site plus the running total.
type VisitLog struct {
	Data  []VisitLogEntry `json:"data"`
	Total float64         `json:"total"`
}

// VisitRepository defines data access for visits
type VisitRepository interface {
	Create(visit *Visit) error
	GetByID(id string) (*Visit, error)
	List() ([]*Visit, error)
	ListBySite(siteID string) ([]*Visit, error)
	Update(visit *Visit) error
	Delete(id string) error
}

// CounterRepository allocates sequential ids. Next atomically increments
// the counter row for the resource and returns the new value, so two
// concurrent creates can never mint the same id.
type CounterRepository interface {
	Next(resource string) (int64, error)
}
