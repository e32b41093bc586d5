package model

import (
	"time"

	"github.com/google/uuid"
)

// User is owned by the persistence layer; this service only reads it.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	Roles        string    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user's roles string (comma-separated) contains
// the given role.
func (u User) HasRole(role string) bool {
	return RolesContain(u.Roles, role)
}
