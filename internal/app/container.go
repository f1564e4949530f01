package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomkeeper/room-reservation-backend/internal/api"
	"github.com/roomkeeper/room-reservation-backend/internal/auth"
	"github.com/roomkeeper/room-reservation-backend/internal/booking"
	"github.com/roomkeeper/room-reservation-backend/internal/event"
	"github.com/roomkeeper/room-reservation-backend/internal/guest"
	"github.com/roomkeeper/room-reservation-backend/internal/notice"
	"github.com/roomkeeper/room-reservation-backend/internal/photo"
	"github.com/roomkeeper/room-reservation-backend/internal/pkg/storage"
	"github.com/roomkeeper/room-reservation-backend/internal/room"
	"github.com/roomkeeper/room-reservation-backend/internal/staff"
	"github.com/roomkeeper/room-reservation-backend/internal/sweeper"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	GuestTokenSecret string
	GuestTokenTTL    time.Duration

	SweepInterval time.Duration
	StoragePath   string

	KafkaBrokers      []string
	KafkaBookingTopic string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	Sweeper    *sweeper.Sweeper
	JWTManager *auth.JWTManager

	producer *event.Producer
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	tokenService, err := guest.NewTokenService(cfg.GuestTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init guest token service: %w", err)
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init local storage: %w", err)
	}

	// Staff Module
	staffRepo := staff.NewPgxRepository(cfg.DBPool)
	staffService := staff.NewService(staffRepo, passwordHasher)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo)

	// Booking Module
	var producer *event.Producer
	bookingOpts := []booking.ServiceOption{}
	if len(cfg.KafkaBrokers) > 0 {
		producer = event.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
		bookingOpts = append(bookingOpts, booking.WithEventPublisher(producer))
	}
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, roomService, bookingOpts...)

	// Notice Module
	noticeRepo := notice.NewPgxRepository(cfg.DBPool)
	noticeService := notice.NewService(noticeRepo)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, roomService, store)

	// Expiration Sweeper
	sw := sweeper.New(bookingService, cfg.SweepInterval)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		StaffService:   staffService,
		RoomService:    roomService,
		BookingService: bookingService,
		NoticeService:  noticeService,
		PhotoService:   photoService,
		JWTManager:     jwtManager,
		TokenService:   tokenService,
		GuestTokenTTL:  cfg.GuestTokenTTL,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		Sweeper:    sw,
		JWTManager: jwtManager,
		producer:   producer,
	}, nil
}

// Close releases resources held by the container (currently the Kafka producer).
func (c *Container) Close() error {
	if c.producer != nil {
		return c.producer.Close()
	}
	return nil
}
