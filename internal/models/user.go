package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	AdminRole  = "admin"
	ReaderRole = "reader"
	UserRole   = "user"
)

func ValidRole(role string) bool {
	switch strings.ToLower(role) {
	case AdminRole, ReaderRole, UserRole:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail is applied before every lookup and insert so that
// "  Foo@Bar.com " and "foo@bar.com" identify the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
