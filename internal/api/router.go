package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/court-reservation/internal/auth"
	"github.com/nekogravitycat/court-reservation/internal/booking"
	bookingHttp "github.com/nekogravitycat/court-reservation/internal/booking/http"
	"github.com/nekogravitycat/court-reservation/internal/court"
	courtHttp "github.com/nekogravitycat/court-reservation/internal/court/http"
	"github.com/nekogravitycat/court-reservation/internal/logging"
	"github.com/nekogravitycat/court-reservation/internal/metrics"
	paymentHttp "github.com/nekogravitycat/court-reservation/internal/payment/http"
	"github.com/nekogravitycat/court-reservation/internal/reservation"
	reservationHttp "github.com/nekogravitycat/court-reservation/internal/reservation/http"
	"github.com/nekogravitycat/court-reservation/internal/user"
	userHttp "github.com/nekogravitycat/court-reservation/internal/user/http"
)

// Config holds the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       zerolog.Logger

	JWTManager         *auth.JWTManager
	UserService        user.Service
	CourtService       court.Service
	BookingService     booking.Service
	ReservationService reservation.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logging.Middleware(cfg.Logger), Recovery(cfg.Logger))

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Web client
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", Health)
	r.GET("/metrics", metrics.Handler())

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	ownerMiddleware := auth.RequireCapability(auth.CapManageBookings)
	adminMiddleware := auth.RequireCapability(auth.CapManageUsers)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	paymentHandler := paymentHttp.NewHandler()
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, ownerMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler)
	}

	return r
}
