package photo

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("photo not found")
	ErrNotAnImage   = errors.New("uploaded file is not an image")
	ErrNoThumbnail  = errors.New("thumbnail not available for this photo")
	ErrRoomRequired = errors.New("room_id is required")
)

// Photo represents an image attached to a room.
type Photo struct {
	ID            string    `json:"id"` // UUID
	RoomID        int64     `json:"room_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath string    `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public URL for accessing a photo by its ID.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public URL for a photo's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
