package snhmodels

import "time"

// User roles
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleClient     = "client"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTechnician, RoleClient:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	UserID       string    `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
