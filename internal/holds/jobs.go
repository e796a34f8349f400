package holds

import (
	"context"
	"sync"
	"time"

	"stepperslife/pkg/logger"
)

// JobProcessor sweeps expired holds on a ticker inside the API process.
// Deployments running cmd/worker can turn it off.
type JobProcessor struct {
	service Service
	config  *JobConfig
	log     *logger.Logger
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// JobConfig contains configuration for background jobs
type JobConfig struct {
	SweepInterval time.Duration
	// SweepTimeout bounds one pass over every chart.
	SweepTimeout time.Duration
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		SweepInterval: 1 * time.Minute,
		SweepTimeout:  30 * time.Second,
	}
}

func NewJobProcessor(service Service, config *JobConfig, log *logger.Logger) *JobProcessor {
	if config == nil {
		config = DefaultJobConfig()
	}
	if config.SweepTimeout <= 0 {
		config.SweepTimeout = config.SweepInterval
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &JobProcessor{
		service: service,
		config:  config,
		log:     log,
		done:    make(chan struct{}),
	}
}

// Start starts the sweeper
func (jp *JobProcessor) Start(ctx context.Context) {
	jp.wg.Add(1)
	go jp.startSweeper(ctx)
	jp.log.Info("Hold sweeper started", "interval", jp.config.SweepInterval.String())
}

// Stop stops the sweeper and waits for a running pass to finish
func (jp *JobProcessor) Stop() {
	jp.once.Do(func() { close(jp.done) })
	jp.wg.Wait()
	jp.log.Info("Hold sweeper stopped")
}

func (jp *JobProcessor) startSweeper(ctx context.Context) {
	defer jp.wg.Done()
	ticker := time.NewTicker(jp.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			jp.sweep(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (jp *JobProcessor) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jp.config.SweepTimeout)
	defer cancel()

	result, err := jp.service.CleanupAllExpiredHolds(ctx)
	if err != nil {
		jp.log.ErrorWithContext(ctx, "hold sweep failed", err, nil)
		return
	}
	if result.Cleaned > 0 || result.Failed > 0 {
		jp.log.InfoContext(ctx, "Hold sweep finished",
			"charts", result.Charts, "cleaned", result.Cleaned, "failed", result.Failed)
	}
}

// GetJobStatus returns the status of background jobs
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	status := "running"
	select {
	case <-jp.done:
		status = "stopped"
	default:
	}
	return map[string]interface{}{
		"sweep_interval": jp.config.SweepInterval.String(),
		"sweep_timeout":  jp.config.SweepTimeout.String(),
		"status":         status,
	}
}
