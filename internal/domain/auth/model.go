// Package auth provides authentication and user management.
package auth

import (
	"net/mail"
	"strings"
	"time"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
	"github.com/DhimiMohamed/stock-management/internal/core/id"
)

// Role of an application user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is an application account. PasswordHash is a bcrypt digest and
// never leaves the auth domain.
type User struct {
	ID           id.ID     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"fullName" db:"full_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Validate checks account invariants before persistence.
func (u *User) Validate() error {
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return apperror.NewValidation("a valid email address is required")
	}
	if strings.TrimSpace(u.FullName) == "" {
		return apperror.NewValidation("full name is required")
	}
	if !u.Role.Valid() {
		return apperror.NewValidation("role must be admin or staff")
	}
	if u.PasswordHash == "" {
		return apperror.NewValidation("password hash is required")
	}
	return nil
}
