package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/court-reservation/internal/api"
	"github.com/nekogravitycat/court-reservation/internal/auth"
	"github.com/nekogravitycat/court-reservation/internal/booking"
	"github.com/nekogravitycat/court-reservation/internal/config"
	"github.com/nekogravitycat/court-reservation/internal/court"
	"github.com/nekogravitycat/court-reservation/internal/metrics"
	"github.com/nekogravitycat/court-reservation/internal/payment"
	"github.com/nekogravitycat/court-reservation/internal/pkg/clock"
	"github.com/nekogravitycat/court-reservation/internal/reservation"
	"github.com/nekogravitycat/court-reservation/internal/user"
)

// Deps are the external resources the container wires in. DBPool is required
// for the postgres store backend and Redis for the redis session backend.
type Deps struct {
	Config *config.Config
	Logger zerolog.Logger
	Clock  clock.Clock
	DBPool *pgxpool.Pool
	Redis  *redis.Client
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	UserService user.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(deps Deps) (*Container, error) {
	cfg := deps.Config
	logger := deps.Logger
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock(cfg.Location)
	}

	metrics.Register()

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	// Stores
	var (
		userRepo     user.Repository
		courtRepo    court.Repository
		bookingStore booking.Store
	)
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		if deps.DBPool == nil {
			return nil, fmt.Errorf("store backend %q needs a database pool", cfg.StoreBackend)
		}
		userRepo = user.NewPgxRepository(deps.DBPool)
		courtRepo = court.NewPgxRepository(deps.DBPool)
		bookingStore = booking.NewPgxStore(deps.DBPool)
	default:
		userRepo = user.NewMemoryRepository()
		courtRepo = court.NewMemoryRepository(court.SeedCourts())
		bookingStore = booking.NewMemoryStore(booking.SeedBookings(clk.Now())...)
	}

	var sessions reservation.SessionStore
	switch cfg.SessionBackend {
	case config.BackendRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("session backend %q needs a redis client", cfg.SessionBackend)
		}
		sessions = reservation.NewRedisSessionStore(deps.Redis, cfg.SessionTTL)
	default:
		sessions = reservation.NewMemorySessionStore(cfg.SessionTTL, clk)
	}

	// Services
	userService := user.NewService(userRepo, passwordHasher, logger)
	courtService := court.NewService(courtRepo)
	bookingService := booking.NewService(bookingStore, clk, logger)

	gateway := payment.NewMockGateway(cfg.PaymentDelay, clk)
	committer := reservation.NewCommitter(courtService, bookingStore, gateway, clk, logger)
	reservationService := reservation.NewService(courtService, bookingStore, sessions, committer, clk, logger)

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Logger:             logger,
		JWTManager:         jwtManager,
		UserService:        userService,
		CourtService:       courtService,
		BookingService:     bookingService,
		ReservationService: reservationService,
	})

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		UserService: userService,
	}, nil
}

// Bootstrap creates the configured admin account, if any.
func (c *Container) Bootstrap(ctx context.Context, cfg *config.Config) error {
	return c.UserService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
}
