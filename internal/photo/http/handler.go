package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomkeeper/room-reservation-backend/internal/photo"
	"github.com/roomkeeper/room-reservation-backend/internal/pkg/request"
	"github.com/roomkeeper/room-reservation-backend/internal/pkg/response"
	"github.com/roomkeeper/room-reservation-backend/internal/room"
)

type Handler struct {
	service photo.Service
}

func NewHandler(service photo.Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /v1/rooms/:id/photos (multipart form, field "file").
func (h *Handler) Upload(c *gin.Context) {
	roomID, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	p, err := h.service.Upload(c.Request.Context(), roomID, header)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, photo.ErrNotAnImage), errors.Is(err, photo.ErrRoomRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewPhotoResponse(p))
}

// ListByRoom handles GET /v1/rooms/:id/photos.
func (h *Handler) ListByRoom(c *gin.Context) {
	roomID, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	photos, err := h.service.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		response.Error(c, err)
		return
	}

	items := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		items[i] = NewPhotoResponse(p)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Download handles GET /v1/photos/:id.
func (h *Handler) Download(c *gin.Context) {
	h.serve(c, h.service.Download, false)
}

// DownloadThumbnail handles GET /v1/photos/:id/thumbnail.
func (h *Handler) DownloadThumbnail(c *gin.Context) {
	h.serve(c, h.service.DownloadThumbnail, true)
}

func (h *Handler) serve(c *gin.Context, fetch func(ctx context.Context, id string) (io.ReadCloser, *photo.Photo, error), thumbnail bool) {
	id := c.Param("id")

	stream, p, err := fetch(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, photo.ErrNotFound), errors.Is(err, photo.ErrNoThumbnail):
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		default:
			response.Error(c, err)
		}
		return
	}
	defer stream.Close()

	contentType := p.ContentType
	if thumbnail {
		contentType = "image/jpeg"
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}

// Delete handles DELETE /v1/photos/:id.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, photo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
