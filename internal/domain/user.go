package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identity.
//
// Password is stored and compared in plaintext. That matches the system this
// replaces and is a known, deliberate defect — do not log it, and never
// include it in API responses (PublicUser exists for that).
//
// Role is cosmetic: nothing in the system gates behavior on it.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the password-free view of a User returned by the API.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     string    `json:"role,omitempty"`
}

// Public strips the password from a User.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role}
}
