// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	_ "stepperslife/docs"
	"stepperslife/internal/events"
	"stepperslife/internal/holds"
	"stepperslife/internal/notifications"
	"stepperslife/internal/reservations"
	"stepperslife/internal/seatingcharts"
	"stepperslife/internal/shared/config"
	"stepperslife/internal/shared/database"
	"stepperslife/internal/shared/middleware"
	"stepperslife/pkg/cache"
	"stepperslife/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// HealthChecker reports whether the backing stores answer.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	health    HealthChecker
	publisher notifications.Publisher
	log       *logger.Logger

	cache   cache.Service
	locker  seatingcharts.Locker
	mutator *seatingcharts.Mutator

	// Built by SetupRoutes, shared between modules
	eventService    events.Service
	reservationRepo reservations.Repository
	holdService     holds.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, log *logger.Logger) *Router {
	if log == nil {
		log = logger.GetDefault()
	}
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}

	r := &Router{
		config:    cfg,
		db:        db,
		health:    db,
		publisher: publisher,
		log:       log,
	}

	redisClient := db.GetRedisClient()
	if redisClient != nil {
		r.cache = cache.NewService(redisClient, log)
		r.locker = seatingcharts.NewRedisLocker(redisClient, cfg.Seating.LockTTL, cfg.Seating.LockWait)
	} else {
		r.cache = cache.NewNoop()
		r.locker = seatingcharts.NewNopLocker()
	}

	chartRepo := seatingcharts.NewRepository(db.GetPostgreSQL())
	r.mutator = seatingcharts.NewMutator(chartRepo, r.locker, r.cache, cfg.Seating.MaxWriteRetries, log)
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.JWTAuthWithConfig(r.config)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Events first: the chart surface checks ownership through them
		r.setupEventRoutes(api, auth)

		r.setupSeatingChartRoutes(api, auth)
		r.setupReservationRoutes(api, auth)
		r.setupHoldRoutes(api, auth)
	}
}

// HoldService returns the hold manager built by SetupRoutes, for the
// in-process sweeper.
func (r *Router) HoldService() holds.Service {
	return r.holdService
}

// Locker returns the chart lock shared by every module.
func (r *Router) Locker() seatingcharts.Locker {
	return r.locker
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.health.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "stepperslife-seating",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "stepperslife-seating",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"redis":       r.db.GetRedisClient() != nil,
			"broker":      r.config.Broker.Type,
			"timestamp":   time.Now(),
		})
	})
}

// setupEventRoutes configures event record routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	r.eventService = events.NewService(eventRepo, r.cache, r.log)
	eventController := events.NewController(r.eventService)

	events.SetupEventRoutes(rg, eventController, auth)
}

// setupSeatingChartRoutes configures the organizer chart surface and the
// public chart reads
func (r *Router) setupSeatingChartRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	chartRepo := seatingcharts.NewRepository(r.db.GetPostgreSQL())
	r.reservationRepo = reservations.NewRepository(r.db.GetPostgreSQL())

	chartService := seatingcharts.NewService(
		chartRepo,
		r.mutator,
		r.eventService,
		r.reservationRepo,
		r.cache,
		r.publisher,
		r.log,
	)
	chartController := seatingcharts.NewController(chartService)

	seatingcharts.SetupSeatingChartRoutes(rg, chartController, auth)
}

// setupReservationRoutes configures the ledger routes used by the ticketing
// service
func (r *Router) setupReservationRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	if r.reservationRepo == nil {
		r.reservationRepo = reservations.NewRepository(r.db.GetPostgreSQL())
	}
	reservationService := reservations.NewService(r.reservationRepo, r.mutator, r.publisher, r.log)
	reservationController := reservations.NewController(reservationService)

	reservations.SetupReservationRoutes(rg, reservationController, auth)
}

// setupHoldRoutes configures session hold routes
func (r *Router) setupHoldRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	chartRepo := seatingcharts.NewRepository(r.db.GetPostgreSQL())
	r.holdService = holds.NewService(chartRepo, r.mutator, r.publisher, r.log,
		holds.WithHoldTTL(r.config.Seating.HoldTTL),
	)
	holdController := holds.NewController(r.holdService)

	holds.SetupHoldRoutes(rg, holdController, auth)
}
