package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roomkeeper/room-reservation-backend/internal/booking"
	"github.com/roomkeeper/room-reservation-backend/internal/guest"
	"github.com/roomkeeper/room-reservation-backend/internal/pkg/request"
	"github.com/roomkeeper/room-reservation-backend/internal/pkg/response"
)

type Handler struct {
	service  booking.Service
	tokens   *guest.TokenService
	tokenTTL time.Duration
}

func NewHandler(service booking.Service, tokens *guest.TokenService, tokenTTL time.Duration) *Handler {
	return &Handler{
		service:  service,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

//
// POST /v1/bookings (public)
//

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := booking.CreateRequest{
		RoomID:    body.RoomID,
		StartTime: body.StartTime.UTC(),
		EndTime:   body.EndTime.UTC(),
		Title:     body.Title,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

//
// POST /v1/guest/login (public)
//

func (h *Handler) GuestLogin(c *gin.Context) {
	var body GuestLoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ids, err := h.service.LoginLookup(c.Request.Context(), body.BookingNumber, body.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(ids) == 0 {
		// Wrong number and wrong name are indistinguishable on purpose.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid booking number or name"})
		return
	}

	expiresAt := time.Now().UTC().Add(h.tokenTTL)
	token, err := h.tokens.Issue(ids, expiresAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, GuestLoginResponse{
		SessionToken: token,
		ExpiresAt:    expiresAt,
		BookingIDs:   ids,
	})
}

//
// Guest session routes (/v1/guest/bookings)
//

func (h *Handler) ListMine(c *gin.Context) {
	ids := guest.BookingIDs(c)

	items := make([]BookingResponse, 0, len(ids))
	for _, id := range ids {
		b, err := h.service.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				// Deleted since the token was issued; skip it.
				continue
			}
			response.Error(c, err)
			return
		}
		items = append(items, NewBookingResponse(b))
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) GetMine(c *gin.Context) {
	id, ok := h.authorizedID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdateMine(c *gin.Context) {
	id, ok := h.authorizedID(c)
	if !ok {
		return
	}
	h.update(c, id)
}

func (h *Handler) UpdateStatusMine(c *gin.Context) {
	id, ok := h.authorizedID(c)
	if !ok {
		return
	}
	h.updateStatus(c, id)
}

func (h *Handler) DeleteMine(c *gin.Context) {
	id, ok := h.authorizedID(c)
	if !ok {
		return
	}
	h.delete(c, id)
}

// authorizedID parses the booking ID path parameter and checks it against the
// session's authorized set. Unknown and forbidden IDs both read as 404 so a
// guest cannot probe which booking IDs exist.
func (h *Handler) authorizedID(c *gin.Context) (int64, bool) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return 0, false
	}
	if !guest.Authorized(c, id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return 0, false
	}
	return id, true
}

//
// Staff routes (/v1/bookings)
//

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var roomID int64
	if v := c.Query("room_id"); v != "" {
		roomID, _ = strconv.ParseInt(v, 10, 64)
	}

	var startTime, endTime *time.Time
	if v := c.Query("start_time_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			startTime = &t
		}
	}
	if v := c.Query("start_time_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			endTime = &t
		}
	}

	filter := booking.Filter{
		RoomID:    roomID,
		Status:    c.Query("status"),
		StartTime: startTime,
		EndTime:   endTime,
		Page:      page,
		PageSize:  pageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}
	h.update(c, id)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}
	h.updateStatus(c, id)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return
	}
	h.delete(c, id)
}

//
// Shared bodies
//

func (h *Handler) update(c *gin.Context, id int64) {
	var body UpdateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := booking.UpdateRequest{
		StartTime: body.StartTime.UTC(),
		EndTime:   body.EndTime.UTC(),
		Title:     body.Title,
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) updateStatus(c *gin.Context, id int64) {
	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) delete(c *gin.Context, id int64) {
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
