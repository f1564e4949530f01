package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomkeeper/room-reservation-backend/internal/auth"
	"github.com/roomkeeper/room-reservation-backend/internal/staff"
)

type AuthHandler struct {
	staffService staff.Service
	jwtManager   *auth.JWTManager
}

func NewAuthHandler(
	staffService staff.Service,
	jwtManager *auth.JWTManager,
) *AuthHandler {
	return &AuthHandler{
		staffService: staffService,
		jwtManager:   jwtManager,
	}
}

//
// POST /v1/auth/register
//

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	m, err := h.staffService.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		switch err {
		case staff.ErrEmailAlreadyUsed:
			c.JSON(http.StatusConflict, gin.H{"error": "email already used"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	resp := RegisterResponse{
		Staff: NewStaffResponse(m),
	}

	c.JSON(http.StatusCreated, resp)
}

//
// POST /v1/auth/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	m, err := h.staffService.Login(ctx, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid email or password",
		})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(m.ID, m.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to generate token",
		})
		return
	}

	resp := LoginResponse{
		AccessToken: token,
		Staff:       NewStaffResponse(m),
	}

	c.JSON(http.StatusOK, resp)
}

//
// GET /v1/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	staffID := auth.GetStaffID(c)
	if staffID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()

	m, err := h.staffService.GetByID(ctx, staffID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff member not found"})
		return
	}

	resp := MeResponse{
		Staff: NewStaffResponse(m),
	}

	c.JSON(http.StatusOK, resp)
}
