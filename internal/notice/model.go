package notice

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("notice not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
)

// Notice represents a house-wide announcement shown to guests.
type Notice struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing notices.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
