package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-reservation/internal/auth"
	"github.com/nekogravitycat/court-reservation/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password must be at least 8 characters")
	ErrInvalidType        = apperror.New(http.StatusBadRequest, "type must be USER or GYM_OWNER")
)

// User represents a user in the system.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Type         string // auth.TypeUser or auth.TypeGymOwner
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Identity is the token subject for u.
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		UserID:  u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Type:    u.Type,
		IsAdmin: u.IsAdmin,
	}
}

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Type     string
}

// UpdateInput holds the admin-editable fields. Nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Phone    *string
	Type     *string
	IsActive *bool
	IsAdmin  *bool
}

// UserFilter defines filter options for listing users.
type UserFilter struct {
	Email    string
	Name     string
	Type     string
	IsActive *bool // Use pointer to distinguish between false and nil (not set)

	Page     int
	PageSize int
}
