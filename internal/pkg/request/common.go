package request

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a numeric path parameter. Returns the parsed value and
// whether it was a valid positive integer.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListParams holds common pagination query parameters.
type ListParams struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}
