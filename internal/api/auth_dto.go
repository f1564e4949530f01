package api

import (
	"time"

	"github.com/roomkeeper/room-reservation-backend/internal/staff"
)

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffResponse is the shape of staff data returned in API responses.
type StaffResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsAdmin     bool       `json:"is_admin"`
}

// RegisterResponse is the response for POST /v1/auth/register.
type RegisterResponse struct {
	Staff StaffResponse `json:"staff"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	Staff       StaffResponse `json:"staff"`
}

// MeResponse is the response for GET /v1/me.
type MeResponse struct {
	Staff StaffResponse `json:"staff"`
}

// NewStaffResponse converts domain staff.Staff to StaffResponse used by the API.
func NewStaffResponse(m *staff.Staff) StaffResponse {
	// Make a copy of time fields to avoid accidental mutation from outside.
	createdAt := m.CreatedAt
	var lastLoginAt *time.Time
	if m.LastLoginAt != nil {
		ll := *m.LastLoginAt
		lastLoginAt = &ll
	}

	return StaffResponse{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		CreatedAt:   createdAt,
		LastLoginAt: lastLoginAt,
		IsActive:    m.IsActive,
		IsAdmin:     m.IsAdmin,
	}
}
