package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/roomkeeper/room-reservation-backend/internal/auth"
	"github.com/roomkeeper/room-reservation-backend/internal/booking"
	bookingHttp "github.com/roomkeeper/room-reservation-backend/internal/booking/http"
	"github.com/roomkeeper/room-reservation-backend/internal/guest"
	"github.com/roomkeeper/room-reservation-backend/internal/notice"
	noticeHttp "github.com/roomkeeper/room-reservation-backend/internal/notice/http"
	"github.com/roomkeeper/room-reservation-backend/internal/photo"
	photoHttp "github.com/roomkeeper/room-reservation-backend/internal/photo/http"
	"github.com/roomkeeper/room-reservation-backend/internal/room"
	roomHttp "github.com/roomkeeper/room-reservation-backend/internal/room/http"
	"github.com/roomkeeper/room-reservation-backend/internal/staff"
)

// Config bundles everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	StaffService   staff.Service
	RoomService    room.Service
	BookingService booking.Service
	NoticeService  notice.Service
	PhotoService   photo.Service

	JWTManager    *auth.JWTManager
	TokenService  *guest.TokenService
	GuestTokenTTL time.Duration
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Frontend dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid staff JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated staff member has admin privileges.
	adminMiddleware := RequireAdmin(cfg.StaffService)
	// sessionMiddleware: Validates a guest session token issued at guest login.
	sessionMiddleware := guest.SessionRequired(cfg.TokenService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(cfg.StaffService, cfg.JWTManager)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.TokenService, cfg.GuestTokenTTL)
	noticeHandler := noticeHttp.NewHandler(cfg.NoticeService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, sessionMiddleware, authMiddleware, adminMiddleware)
		noticeHttp.RegisterRoutes(v1, noticeHandler, authMiddleware, adminMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware, adminMiddleware)
	}

	return r
}
