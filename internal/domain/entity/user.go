// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff account: an administrator, a clerk or a field collector.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	PasswordHash string     `json:"-"`                       // bcrypt hash, never serialized.
	IsActive     bool       `json:"is_active"`               // Inactive users cannot log in.
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"` // Nil until the first successful login.
	Roles        []*Role    `json:"roles,omitempty"`         // Loaded on demand.
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// RoleNames returns the names of the loaded roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}

	return names
}

// UserRole links a user to a role.
type UserRole struct {
	UserID    uuid.UUID `json:"user_id"`
	RoleID    uuid.UUID `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}
