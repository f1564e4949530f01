package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roomkeeper/room-reservation-backend/internal/auth"
	"github.com/roomkeeper/room-reservation-backend/internal/staff"
)

// RequireAdmin ensures the authenticated staff member has admin privileges.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(staffService staff.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		staffID := auth.GetStaffID(c)
		if staffID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// Check permissions
		m, err := staffService.GetByID(c.Request.Context(), staffID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "staff member not found"})
			return
		}

		if !m.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
