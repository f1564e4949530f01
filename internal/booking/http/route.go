package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, sessionMiddleware, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.POST("/bookings", h.Create)
	g.POST("/guest/login", h.GuestLogin)

	// === Guest Session Routes ===
	mine := g.Group("/guest/bookings")
	mine.Use(sessionMiddleware)
	{
		mine.GET("", h.ListMine)
		mine.GET("/:id", h.GetMine)
		mine.PATCH("/:id", h.UpdateMine)
		mine.POST("/:id/status", h.UpdateStatusMine)
		mine.DELETE("/:id", h.DeleteMine)
	}

	// === Staff Routes ===
	admin := g.Group("/bookings")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.PATCH("/:id", h.Update)
		admin.POST("/:id/status", h.UpdateStatus)
		admin.DELETE("/:id", h.Delete)
	}
}
