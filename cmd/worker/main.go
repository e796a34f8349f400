package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stepperslife/internal/holds"
	"stepperslife/internal/notifications"
	"stepperslife/internal/seatingcharts"
	"stepperslife/internal/shared/config"
	"stepperslife/internal/shared/database"
	"stepperslife/pkg/cache"
	"stepperslife/pkg/logger"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

// The worker runs scheduled hold cleanup on asynq. Run it alongside API
// instances started with HOLD_SWEEP_IN_PROCESS=false.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.GetDefault().Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	appLogger := logger.New()
	logger.SetDefault(appLogger)

	if !cfg.Redis.Enabled {
		appLogger.Error("The hold cleanup worker needs Redis; set REDIS_ENABLED=true")
		os.Exit(1)
	}

	db, err := database.InitDB(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to connect", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	publisher, err := notifications.NewPublisher(cfg.Broker, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize event publisher, continuing without one", slog.Any("error", err))
		publisher = notifications.NewNoopPublisher()
	}
	defer publisher.Close()

	holdService := newHoldService(cfg, db, publisher, appLogger)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Scheduler.Concurrency,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger:   newAsynqLogger(appLogger),
		LogLevel: asynq.InfoLevel,
	})

	mux := asynq.NewServeMux()
	holds.NewTaskHandler(holdService, appLogger).Register(mux)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger:   newAsynqLogger(appLogger),
		LogLevel: asynq.InfoLevel,
	})

	task, err := holds.NewCleanupTask(holds.AllEvents)
	if err != nil {
		appLogger.Error("failed to build cleanup task", slog.Any("error", err))
		os.Exit(1)
	}
	entryID, err := scheduler.Register(cfg.Scheduler.CronSpec, task,
		asynq.Queue("critical"),
		asynq.MaxRetry(0),
		asynq.Timeout(cfg.Scheduler.SweepInterval),
	)
	if err != nil {
		appLogger.Error("failed to register cleanup schedule", slog.Any("error", err))
		os.Exit(1)
	}
	appLogger.Info("Hold cleanup scheduled",
		slog.String("entry_id", entryID),
		slog.String("cron", cfg.Scheduler.CronSpec),
	)

	if err := scheduler.Start(); err != nil {
		appLogger.Error("Scheduler failed to start", slog.Any("error", err))
		os.Exit(1)
	}
	if err := srv.Start(mux); err != nil {
		appLogger.Error("Asynq server failed to start", slog.Any("error", err))
		scheduler.Shutdown()
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down worker...")

	scheduler.Shutdown()
	srv.Shutdown()

	appLogger.Info("Worker exited gracefully")
}

func newHoldService(cfg *config.Config, db *database.DB, publisher notifications.Publisher, log *logger.Logger) holds.Service {
	redisClient := db.GetRedisClient()

	locker := seatingcharts.NewRedisLocker(redisClient, cfg.Seating.LockTTL, cfg.Seating.LockWait)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := locker.PreloadScripts(ctx); err != nil {
		log.Warn("Failed to preload Redis Lua scripts", slog.Any("error", err))
	}
	cancel()

	chartRepo := seatingcharts.NewRepository(db.GetPostgreSQL())
	mutator := seatingcharts.NewMutator(chartRepo, locker, cache.NewService(redisClient, log), cfg.Seating.MaxWriteRetries, log)

	return holds.NewService(chartRepo, mutator, publisher, log, holds.WithHoldTTL(cfg.Seating.HoldTTL))
}
