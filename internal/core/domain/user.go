package domain

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// ParseUserRole accepts a role name in any letter case.
func ParseUserRole(role string) (UserRole, error) {
	trimmed := strings.TrimSpace(role)
	if trimmed == "" {
		return "", NewError(KindValidation, "Role cannot be null or empty")
	}

	switch UserRole(strings.ToUpper(trimmed)) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}

	return "", NewError(KindValidation, fmt.Sprintf("Invalid role: %s. Valid roles are: ADMIN, USER", trimmed))
}

type User struct {
	ID                int
	UUID              uuid.UUID
	Name              string
	Email             string
	EncryptedPassword string
	Enabled           bool
	Role              UserRole
	VerificationCode  *string
	CodeExpiresAt     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasPendingCode() bool {
	return u.VerificationCode != nil && u.CodeExpiresAt != nil
}

// SetPendingCode replaces any outstanding one-time code. Code and expiry are
// always written together.
func (u *User) SetPendingCode(code string, expiresAt time.Time) {
	u.VerificationCode = &code
	u.CodeExpiresAt = &expiresAt
}

func (u *User) ClearPendingCode() {
	u.VerificationCode = nil
	u.CodeExpiresAt = nil
}

func (u *User) CodeMatches(code string) bool {
	if u.VerificationCode == nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(*u.VerificationCode), []byte(code)) == 1
}

// CodeExpired reports true when no expiry is recorded.
func (u *User) CodeExpired(now time.Time) bool {
	if u.CodeExpiresAt == nil {
		return true
	}

	return u.CodeExpiresAt.Before(now)
}
