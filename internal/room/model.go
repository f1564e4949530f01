package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("room not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidCategory = errors.New("category must be sleeping or meeting")
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

type Category string

const (
	CategorySleeping Category = "sleeping"
	CategoryMeeting  Category = "meeting"
)

// Room represents a bookable room. Capacity counts beds for sleeping rooms
// and chairs for meeting rooms.
type Room struct {
	ID        int64
	Name      string
	Category  Category
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	Category string
	Page     int
	PageSize int
}
