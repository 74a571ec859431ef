package domain

// Site represents a tourist site. Tarif is the price per day of visit.
type Site struct {
	ID    string  `json:"id" validate:"required"` // generated, prefix "S", width 5
	Name  string  `json:"name" validate:"required"`
	Place string  `json:"place" validate:"required"`
	Tarif float64 `json:"tarif" validate:"gte=0"`
}

// SiteReport is one line of the per-site revenue report: the number of
// visits recorded for the site and the revenue they represent
// (sum of tarif x duration).
type SiteReport struct {
	Name     string  `json:"name"`
	NbVisits int     `json:"nbVisits"`
	Total    float64 `json:"total"`
}

// SiteRepository defines data access for sites
type SiteRepository interface {
	Create(site *Site) error
	GetByID(id string) (*Site, error)
	List() ([]*Site, error)
	Update(site *Site) error
	// Delete removes the site and, in the same transaction, every visit
	// referencing it.
	Delete(id string) error
	Exists(id string) (bool, error)
}
