package staff

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("staff member not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("staff account is inactive")
)

// Staff represents a hotel staff account used for administration.
type Staff struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
	IsAdmin      bool
}
