package http

import (
	"time"

	"github.com/roomkeeper/room-reservation-backend/internal/room"
)

type RoomResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Category:  string(r.Category),
		Capacity:  r.Capacity,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type CreateRoomBody struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required,oneof=sleeping meeting"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
}

type UpdateRoomBody struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
}
