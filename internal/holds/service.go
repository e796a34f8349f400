package holds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stepperslife/internal/notifications"
	"stepperslife/internal/seatingcharts"
	"stepperslife/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultHoldTTL is how long a session keeps its seats without checking out.
const DefaultHoldTTL = 15 * time.Minute

type Service interface {
	// HoldSeatsForSession holds every requested seat on the event's chart
	// or none of them.
	HoldSeatsForSession(ctx context.Context, eventID uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error)
	ReleaseSessionHolds(ctx context.Context, eventID uuid.UUID, req ReleaseHoldsRequest) (*ReleaseResponse, error)
	CleanupExpiredSessionHolds(ctx context.Context, eventID uuid.UUID) (*CleanupResponse, error)
	// CleanupAllExpiredHolds sweeps every active chart. A failing chart is
	// logged and skipped.
	CleanupAllExpiredHolds(ctx context.Context) (*SweepResult, error)
}

type service struct {
	charts    seatingcharts.Repository
	mutator   *seatingcharts.Mutator
	publisher notifications.Publisher
	log       *logger.Logger
	holdTTL   time.Duration
	now       func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// WithHoldTTL sets the hold window
func WithHoldTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.holdTTL = ttl
		}
	}
}

func NewService(charts seatingcharts.Repository, mutator *seatingcharts.Mutator, publisher notifications.Publisher, log *logger.Logger, opts ...Option) Service {
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}
	if log == nil {
		log = logger.GetDefault()
	}
	s := &service{
		charts:    charts,
		mutator:   mutator,
		publisher: publisher,
		log:       log,
		holdTTL:   DefaultHoldTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) HoldSeatsForSession(ctx context.Context, eventID uuid.UUID, req HoldSeatsRequest) (*HoldResponse, error) {
	if err := validateSession(req.SessionID); err != nil {
		return nil, err
	}
	if len(req.Seats) == 0 {
		return nil, fmt.Errorf("%w: at least one seat is required", seatingcharts.ErrInvalidRequest)
	}
	if err := validateSeatRequests(req.Seats); err != nil {
		return nil, err
	}

	current, err := s.charts.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var (
		held      []seatingcharts.SeatLocation
		expiresAt time.Time
	)
	chart, err := s.mutator.Mutate(ctx, current.ID, func(_ *gorm.DB, chart *seatingcharts.SeatingChart) error {
		now := s.now().UTC()
		expiresAt = now.Add(s.holdTTL)

		next := seatingcharts.CloneSections(chart.SectionList())
		locs, err := placeHolds(next, req.SessionID, req.Seats, expiresAt, now)
		if err != nil {
			return err
		}
		chart.SetSections(next)
		held = locs
		return nil
	})
	if err != nil {
		if errors.Is(err, seatingcharts.ErrSeatConflict) {
			s.log.LogSeatConflict(ctx, current.ID.String(), "hold", err)
		}
		return nil, err
	}

	s.log.LogHoldPlaced(ctx, chart.ID.String(), req.SessionID, len(held), expiresAt)
	evt := notifications.NewSeatingEvent(notifications.EventSeatsHeld, chart.ID, chart.EventID)
	evt.SessionID = req.SessionID
	evt.Seats = seatingcharts.SeatRefs(held)
	evt.Count = len(held)
	evt.ExpiresAt = &expiresAt
	notifications.Notify(ctx, s.publisher, s.log, evt)

	return &HoldResponse{
		ChartID:   chart.ID,
		EventID:   chart.EventID,
		SessionID: req.SessionID,
		ExpiresAt: expiresAt,
		Seats:     held,
	}, nil
}

func (s *service) ReleaseSessionHolds(ctx context.Context, eventID uuid.UUID, req ReleaseHoldsRequest) (*ReleaseResponse, error) {
	if err := validateSession(req.SessionID); err != nil {
		return nil, err
	}
	if err := validateSeatRequests(req.Seats); err != nil {
		return nil, err
	}

	result := &ReleaseResponse{EventID: eventID, SessionID: req.SessionID, Seats: []seatingcharts.SeatLocation{}}

	current, err := s.charts.GetByEventID(ctx, eventID)
	if errors.Is(err, seatingcharts.ErrChartNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	var released []seatingcharts.SeatLocation
	chart, err := s.mutator.Mutate(ctx, current.ID, func(_ *gorm.DB, chart *seatingcharts.SeatingChart) error {
		next := seatingcharts.CloneSections(chart.SectionList())
		released = releaseHolds(next, req.SessionID, req.Seats)
		if len(released) == 0 {
			return seatingcharts.ErrNoChanges
		}
		chart.SetSections(next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(released) == 0 {
		return result, nil
	}

	result.Released = len(released)
	result.Seats = released

	s.log.LogHoldsReleased(ctx, chart.ID.String(), req.SessionID, len(released))
	evt := notifications.NewSeatingEvent(notifications.EventHoldsReleased, chart.ID, chart.EventID)
	evt.SessionID = req.SessionID
	evt.Seats = seatingcharts.SeatRefs(released)
	evt.Count = len(released)
	notifications.Notify(ctx, s.publisher, s.log, evt)

	return result, nil
}

func (s *service) CleanupExpiredSessionHolds(ctx context.Context, eventID uuid.UUID) (*CleanupResponse, error) {
	result := &CleanupResponse{EventID: eventID}

	current, err := s.charts.GetByEventID(ctx, eventID)
	if errors.Is(err, seatingcharts.ErrChartNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	cleaned, err := s.cleanupChart(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	result.CleanedCount = cleaned
	return result, nil
}

func (s *service) CleanupAllExpiredHolds(ctx context.Context) (*SweepResult, error) {
	ids, err := s.charts.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seating charts: %w", err)
	}

	result := &SweepResult{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		cleaned, err := s.cleanupChart(ctx, id)
		if err != nil {
			result.Failed++
			s.log.ErrorWithContext(ctx, "failed to clean up expired holds", err, map[string]interface{}{
				"chart_id": id.String(),
			})
			continue
		}
		result.Charts++
		result.Cleaned += cleaned
	}
	return result, nil
}

func (s *service) cleanupChart(ctx context.Context, chartID uuid.UUID) (int, error) {
	var expired []seatingcharts.SeatLocation
	chart, err := s.mutator.Mutate(ctx, chartID, func(_ *gorm.DB, chart *seatingcharts.SeatingChart) error {
		next := seatingcharts.CloneSections(chart.SectionList())
		expired = expireHolds(next, s.now().UTC())
		if len(expired) == 0 {
			return seatingcharts.ErrNoChanges
		}
		chart.SetSections(next)
		return nil
	})
	if errors.Is(err, seatingcharts.ErrChartNotFound) {
		// Deleted between listing and sweeping.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}

	s.log.LogHoldsExpired(ctx, chart.ID.String(), len(expired))
	evt := notifications.NewSeatingEvent(notifications.EventHoldsExpired, chart.ID, chart.EventID)
	evt.Seats = seatingcharts.SeatRefs(expired)
	evt.Count = len(expired)
	notifications.Notify(ctx, s.publisher, s.log, evt)

	return len(expired), nil
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("%w: session id is required", seatingcharts.ErrInvalidRequest)
	}
	return nil
}

func validateSeatRequests(reqs []SeatRequest) error {
	for i, req := range reqs {
		if req.SeatNumber == "" {
			return fmt.Errorf("%w: seat %d has no seat number", seatingcharts.ErrInvalidRequest, i)
		}
		if (req.TableID == "") == (req.RowID == "") {
			return fmt.Errorf("%w: seat %d must name exactly one of tableId and rowId", seatingcharts.ErrInvalidRequest, i)
		}
	}
	return nil
}
