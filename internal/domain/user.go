package domain

// User represents a registered account. The stored password is a bcrypt
// hash and is never serialized in API responses.
type User struct {
	ID       string `json:"id"` // generated, prefix "U", width 5
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"` // bcrypt hash
}

// PublicUser is the projection returned by registration: identifying
// fields only, no credential material.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the API-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(user *User) error
	GetByEmail(email string) (*User, error)
}
