// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents what a user is allowed to do.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Master account seeded on first migration.
const (
	MasterUsername = "master"
	MasterEmail    = "master@cmc.com"
)

// User represents an operator account of the CMC server.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User with a fresh ID.
func NewUser(username, email, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsValidRole reports whether the role is known.
func IsValidRole(role Role) bool {
	return role == RoleAdmin || role == RoleOperator
}
