package models

import (
	"time"

	"github.com/avolkov/storefront/pkg/api"
)

// Role is the user's authorization level. The domain is closed: only the two
// named values are legitimate. Everything else that can arrive from storage or
// the wire (2, -1, a missing column) must be treated as not-admin.
type Role int

const (
	// RoleUser is a regular customer
	RoleUser Role = 0
	// RoleAdmin is the single value admitted by the admin gate
	RoleAdmin Role = 1
)

// IsAdmin reports whether the role grants admin access.
// Default-deny: any value other than RoleAdmin, including unknown ones, denies.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`            // UUID
	Username     string    `json:"username"`      // unique username
	Email        string    `json:"email"`         // unique email
	PasswordHash string    `json:"-"`             // argon2id PHC string, never serialized
	Role         Role      `json:"role"`          // 0 = user, 1 = admin
	CreatedAt    time.Time `json:"created_at"`    // creation time
	UpdatedAt    time.Time `json:"updated_at"`    // last update time
}

// Profile converts the user to its public wire representation
func (u *User) Profile() api.UserProfile {
	return api.UserProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     int(u.Role),
	}
}
