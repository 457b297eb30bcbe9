package entity

import "time"

// Roles for API access.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
)

// User is an API account.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plain after persisting
	Name         string
	Role         string // see Role* constants
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
