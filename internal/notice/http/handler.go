package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roomkeeper/room-reservation-backend/internal/notice"
	"github.com/roomkeeper/room-reservation-backend/internal/pkg/request"
	"github.com/roomkeeper/room-reservation-backend/internal/pkg/response"
)

type Handler struct {
	service notice.Service
}

func NewHandler(service notice.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := notice.Filter{
		Keyword:  c.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	}

	notices, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]NoticeResponse, len(notices))
	for i, n := range notices {
		items[i] = NewNoticeResponse(n)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice ID"})
		return
	}

	n, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, notice.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewNoticeResponse(n))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateNoticeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	n, err := h.service.Create(c.Request.Context(), notice.CreateRequest{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrTitleRequired), errors.Is(err, notice.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewNoticeResponse(n))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice ID"})
		return
	}

	var body UpdateNoticeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	n, err := h.service.Update(c.Request.Context(), id, notice.UpdateRequest{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, notice.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
		case errors.Is(err, notice.ErrTitleRequired), errors.Is(err, notice.ErrContentRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewNoticeResponse(n))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, notice.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notice not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
