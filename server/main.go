package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stepperslife/api/routes"
	"stepperslife/internal/holds"
	"stepperslife/internal/notifications"
	"stepperslife/internal/seatingcharts"
	"stepperslife/internal/shared/config"
	"stepperslife/internal/shared/database"
	"stepperslife/pkg/logger"
	"stepperslife/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title           SteppersLife Seating API
// @version         1.0
// @description     Seating charts, session seat holds and the seat reservation ledger.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Re-create the logger now that LOG_LEVEL and GIN_MODE are known
	appLogger = logger.New()
	logger.SetDefault(appLogger)

	// Initialize DB
	db, err := database.InitDB(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.GetRedisClient() != nil {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			WindowDuration:    cfg.RateLimit.WindowDuration,
			DefaultRequests:   cfg.RateLimit.DefaultRequests,
			PublicRequests:    cfg.RateLimit.PublicRequests,
			HoldRequests:      cfg.RateLimit.HoldRequests,
			OrganizerRequests: cfg.RateLimit.OrganizerRequests,
			InternalRequests:  cfg.RateLimit.InternalRequests,
			AdminRequests:     cfg.RateLimit.AdminRequests,
			HealthRequests:    cfg.RateLimit.HealthRequests,
			WhitelistedIPs:    cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
			slog.Int("hold_requests", cfg.RateLimit.HoldRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Lifecycle event publisher
	publisher, err := notifications.NewPublisher(cfg.Broker, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize event publisher, continuing without one", slog.Any("error", err))
		publisher = notifications.NewNoopPublisher()
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing event publisher", slog.Any("error", err))
		}
	}()

	// Setup router
	engine, appRouter := setupRouter(cfg, db, publisher, rateLimiter, appLogger)

	// Preload the chart lock release script
	if locker, ok := appRouter.Locker().(*seatingcharts.RedisLocker); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := locker.PreloadScripts(ctx); err != nil {
			appLogger.Error("Failed to preload Redis Lua scripts", slog.Any("error", err))
		} else {
			appLogger.Info("Redis Lua scripts preloaded for chart locks")
		}
		cancel()
	}

	// In-process hold sweeper
	jobCtx, jobCancel := context.WithCancel(context.Background())
	defer jobCancel()
	var sweeper *holds.JobProcessor
	if cfg.Scheduler.InProcessSweep {
		sweeper = holds.NewJobProcessor(appRouter.HoldService(), &holds.JobConfig{
			SweepInterval: cfg.Scheduler.SweepInterval,
		}, appLogger)
		sweeper.Start(jobCtx)
	}

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.Bool("redis", db.GetRedisClient() != nil),
			slog.String("broker", cfg.Broker.Type),
			slog.Bool("in_process_sweep", cfg.Scheduler.InProcessSweep),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	if sweeper != nil {
		sweeper.Stop()
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher,
	rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) (*gin.Engine, *routes.Router) {
	engine := gin.New()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter := routes.NewRouter(cfg, db, publisher, appLogger)
	appRouter.SetupRoutes(engine)

	return engine, appRouter
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
