package seatingcharts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stepperslife/internal/shared/constants"
	"stepperslife/pkg/cache"
	"stepperslife/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MutateFunc changes chart in place. tx is the open transaction and must be
// used for any other row written alongside the chart. Returning ErrNoChanges
// ends the cycle without a write.
type MutateFunc func(tx *gorm.DB, chart *SeatingChart) error

// Mutator runs every read-modify-write of a chart: under the chart lock,
// inside one transaction, with a version-checked write retried on conflict.
type Mutator struct {
	repo       Repository
	locker     Locker
	cache      cache.Service
	maxRetries int
	log        *logger.Logger
}

func NewMutator(repo Repository, locker Locker, cacheService cache.Service, maxRetries int, log *logger.Logger) *Mutator {
	if locker == nil {
		locker = NewNopLocker()
	}
	if cacheService == nil {
		cacheService = cache.NewNoop()
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &Mutator{repo: repo, locker: locker, cache: cacheService, maxRetries: maxRetries, log: log}
}

// Mutate loads the chart, applies fn and saves the result.
func (m *Mutator) Mutate(ctx context.Context, chartID uuid.UUID, fn MutateFunc) (*SeatingChart, error) {
	return m.run(ctx, chartID, fn, func(ctx context.Context, txRepo Repository, chart *SeatingChart) error {
		return txRepo.UpdateVersioned(ctx, chart)
	})
}

// Remove loads the chart, lets guard veto, and deletes it.
func (m *Mutator) Remove(ctx context.Context, chartID uuid.UUID, guard MutateFunc) (*SeatingChart, error) {
	return m.run(ctx, chartID, guard, func(ctx context.Context, txRepo Repository, chart *SeatingChart) error {
		return txRepo.DeleteVersioned(ctx, chart.ID, chart.Version)
	})
}

func (m *Mutator) run(ctx context.Context, chartID uuid.UUID, fn MutateFunc,
	write func(ctx context.Context, txRepo Repository, chart *SeatingChart) error) (*SeatingChart, error) {

	unlock, err := m.locker.Lock(ctx, constants.BuildChartLockKey(chartID.String()))
	if err != nil {
		if errors.Is(err, ErrLockTimeout) {
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		return nil, err
	}
	defer unlock()

	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		var chart *SeatingChart
		err := m.repo.Transaction(ctx, func(txRepo Repository, tx *gorm.DB) error {
			loaded, err := txRepo.GetByID(ctx, chartID)
			if err != nil {
				return err
			}
			chart = loaded
			if err := fn(tx, chart); err != nil {
				return err
			}
			return write(ctx, txRepo, chart)
		})

		switch {
		case err == nil:
			m.Invalidate(ctx, chart)
			return chart, nil
		case errors.Is(err, ErrNoChanges):
			return chart, nil
		case errors.Is(err, errStaleVersion):
			m.log.DebugContext(ctx, "seating chart write lost a version race, retrying",
				"chart_id", chartID.String(), "attempt", attempt)
			if err := sleepCtx(ctx, time.Duration(attempt)*10*time.Millisecond); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	return nil, ErrConcurrentUpdate
}

// Invalidate drops the cached views of chart.
func (m *Mutator) Invalidate(ctx context.Context, chart *SeatingChart) {
	if chart == nil {
		return
	}
	keys := []string{
		constants.BuildChartDetailKey(chart.ID.String()),
		constants.BuildChartByEventKey(chart.EventID.String()),
	}
	if err := m.cache.Delete(ctx, keys...); err != nil {
		m.log.WarnContext(ctx, "failed to invalidate seating chart cache",
			"chart_id", chart.ID.String(), "error", err.Error())
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
