package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User maps 1:1 to the users table. Immutable after registration.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleAdmin
}

// ParseRole upper-cases s; an empty value means MEMBER
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleMember, nil
	}
	role := Role(strings.ToUpper(s))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
