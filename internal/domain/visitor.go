package domain

// Visitor represents a tourist registered in the system.
type Visitor struct {
	ID      string `json:"id" validate:"required"` // generated, prefix "V", width 5
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// VisitorRepository defines data access for visitors
type VisitorRepository interface {
	Create(visitor *Visitor) error
	GetByID(id string) (*Visitor, error)
	List() ([]*Visitor, error)
	Update(visitor *Visitor) error
	// Delete removes the visitor and, in the same transaction, every
	// visit referencing it.
	Delete(id string) error
	Exists(id string) (bool, error)
}
