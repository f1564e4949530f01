package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	g.GET("/rooms/:id/photos", h.ListByRoom)
	g.GET("/photos/:id", h.Download)
	g.GET("/photos/:id/thumbnail", h.DownloadThumbnail)

	// === Admin Routes ===
	admin := g.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/rooms/:id/photos", h.Upload)
		admin.DELETE("/photos/:id", h.Delete)
	}
}
