package guest

import "github.com/gin-gonic/gin"

// BookingIDs returns the booking IDs the current session is authorized for.
func BookingIDs(c *gin.Context) []int64 {
	if v, ok := c.Get("guestBookingIDs"); ok {
		if ids, ok := v.([]int64); ok {
			return ids
		}
	}
	return nil
}

// Authorized reports whether the current session may act on the given booking.
func Authorized(c *gin.Context, bookingID int64) bool {
	for _, id := range BookingIDs(c) {
		if id == bookingID {
			return true
		}
	}
	return false
}
