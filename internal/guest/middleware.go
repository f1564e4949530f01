package guest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionRequired is a Gin middleware that validates a guest session token
// from Authorization: Bearer <token>. Malformed, tampered and expired tokens
// all produce the same 401 response.
func SessionRequired(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		ok, bookingIDs := tokens.Validate(parts[1])
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired session",
			})
			return
		}

		// Store the authorized booking set for later handlers.
		c.Set("guestBookingIDs", bookingIDs)

		c.Next()
	}
}
