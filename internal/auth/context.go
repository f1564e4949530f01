package auth

import "github.com/gin-gonic/gin"

// GetStaffID returns the authenticated staff member's ID or 0.
func GetStaffID(c *gin.Context) int64 {
	if v, ok := c.Get("staffID"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// GetStaffEmail returns the authenticated staff member's email or empty string.
func GetStaffEmail(c *gin.Context) string {
	if v, ok := c.Get("staffEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
