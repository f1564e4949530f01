package http

import (
	"time"

	"github.com/roomkeeper/room-reservation-backend/internal/booking"
)

// RoomTag is the minimal room reference embedded in booking responses.
type RoomTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID        int64     `json:"id"`
	Room      RoomTag   `json:"room"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Title     string    `json:"title"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Room:      RoomTag{ID: b.RoomID, Name: b.RoomName},
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Title:     b.Title,
		Number:    b.Number,
		Status:    string(b.Status),
		Active:    b.ActiveAt(time.Now().UTC()),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type CreateBookingBody struct {
	RoomID    int64     `json:"room_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Title     string    `json:"title"`
}

type UpdateBookingBody struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Title     string    `json:"title"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// GuestLoginBody carries the booking-number + name credential pair.
type GuestLoginBody struct {
	BookingNumber string `json:"booking_number" binding:"required"`
	Name          string `json:"name" binding:"required"`
}

type GuestLoginResponse struct {
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	BookingIDs   []int64   `json:"booking_ids"`
}
