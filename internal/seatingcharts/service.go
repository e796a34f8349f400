package seatingcharts

import (
	"context"
	"fmt"
	"time"

	"stepperslife/internal/events"
	"stepperslife/internal/notifications"
	"stepperslife/internal/shared/constants"
	"stepperslife/internal/shared/identity"
	"stepperslife/pkg/cache"
	"stepperslife/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authorizer answers whether an actor may manage an event's seating.
type Authorizer interface {
	RequireOwnership(ctx context.Context, actor identity.Actor, eventID uuid.UUID) (*events.Event, error)
}

// ReservationLedger is the read side of the reservation ledger the chart
// surface needs. tx may be nil; when set the read joins that transaction.
type ReservationLedger interface {
	ActiveSeats(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) ([]SeatLocation, error)
}

type Service interface {
	CreateSeatingChart(ctx context.Context, actor identity.Actor, req CreateSeatingChartRequest) (*SeatingChartResponse, error)
	UpdateSeatingChart(ctx context.Context, actor identity.Actor, chartID uuid.UUID, req UpdateSeatingChartRequest) (*SeatingChartResponse, error)
	DeleteSeatingChart(ctx context.Context, actor identity.Actor, chartID uuid.UUID) error

	GetSeatingChart(ctx context.Context, chartID uuid.UUID) (*SeatingChartResponse, error)
	GetSeatingChartByEvent(ctx context.Context, eventID uuid.UUID) (*SeatingChartResponse, error)
	GetAvailability(ctx context.Context, chartID uuid.UUID) (*AvailabilityResponse, error)
}

type service struct {
	repo      Repository
	mutator   *Mutator
	authz     Authorizer
	ledger    ReservationLedger
	cache     cache.Service
	publisher notifications.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// Option tweaks a service at construction
type Option func(*service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(repo Repository, mutator *Mutator, authz Authorizer, ledger ReservationLedger,
	cacheService cache.Service, publisher notifications.Publisher, log *logger.Logger, opts ...Option) Service {
	if cacheService == nil {
		cacheService = cache.NewNoop()
	}
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}
	if log == nil {
		log = logger.GetDefault()
	}
	s := &service{
		repo:      repo,
		mutator:   mutator,
		authz:     authz,
		ledger:    ledger,
		cache:     cacheService,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateSeatingChart(ctx context.Context, actor identity.Actor, req CreateSeatingChartRequest) (*SeatingChartResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("%w: event_id must be a uuid", ErrInvalidRequest)
	}
	if _, err := s.authz.RequireOwnership(ctx, actor, eventID); err != nil {
		return nil, err
	}

	sections := req.Sections
	if sections == nil {
		sections = []Section{}
	}
	NormalizeSections(sections)
	if err := ValidateLayout(req.SeatingStyle, sections); err != nil {
		return nil, err
	}

	chart := &SeatingChart{
		EventID:         eventID,
		Name:            req.Name,
		SeatingStyle:    req.SeatingStyle,
		VenueImageID:    req.VenueImageID,
		VenueImageURL:   req.VenueImageURL,
		VenueImageScale: 1,
		ReservedSeats:   0,
		IsActive:        true,
	}
	if req.VenueImageScale != nil {
		chart.VenueImageScale = *req.VenueImageScale
	}
	if req.VenueImageRotation != nil {
		chart.VenueImageRotation = *req.VenueImageRotation
	}
	chart.SetSections(sections)

	if err := s.repo.Create(ctx, chart); err != nil {
		return nil, fmt.Errorf("failed to create seating chart: %w", err)
	}
	s.mutator.Invalidate(ctx, chart)

	s.log.LogChartCreated(ctx, chart.ID.String(), eventID.String(), actor.UserID.String(), chart.TotalSeats)
	evt := notifications.NewSeatingEvent(notifications.EventChartCreated, chart.ID, chart.EventID)
	evt.Count = chart.TotalSeats
	notifications.Notify(ctx, s.publisher, s.log, evt)

	return ToResponse(chart), nil
}

func (s *service) UpdateSeatingChart(ctx context.Context, actor identity.Actor, chartID uuid.UUID, req UpdateSeatingChartRequest) (*SeatingChartResponse, error) {
	current, err := s.repo.GetByID(ctx, chartID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authz.RequireOwnership(ctx, actor, current.EventID); err != nil {
		return nil, err
	}

	var sections []Section
	if req.Sections != nil {
		sections = *req.Sections
		if sections == nil {
			sections = []Section{}
		}
		NormalizeSections(sections)
	}

	chart, err := s.mutator.Mutate(ctx, chartID, func(tx *gorm.DB, chart *SeatingChart) error {
		if req.Name != nil {
			chart.Name = *req.Name
		}
		if req.SeatingStyle != nil {
			chart.SeatingStyle = *req.SeatingStyle
		}
		if req.VenueImageID != nil {
			chart.VenueImageID = *req.VenueImageID
		}
		if req.VenueImageURL != nil {
			chart.VenueImageURL = *req.VenueImageURL
		}
		if req.VenueImageScale != nil {
			chart.VenueImageScale = *req.VenueImageScale
		}
		if req.VenueImageRotation != nil {
			chart.VenueImageRotation = *req.VenueImageRotation
		}
		if req.IsActive != nil {
			chart.IsActive = *req.IsActive
		}

		if req.Sections != nil || req.SeatingStyle != nil {
			next := chart.SectionList()
			if req.Sections != nil {
				active, err := s.ledger.ActiveSeats(ctx, tx, chart.ID)
				if err != nil {
					return fmt.Errorf("failed to check reservations: %w", err)
				}
				next = CloneSections(sections)
				CarrySeatState(chart.SectionList(), next, ConfirmedSet(active))
			}
			if err := ValidateLayout(chart.SeatingStyle, next); err != nil {
				return err
			}
			chart.SetSections(next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Seating Chart Updated",
		"chart_id", chart.ID.String(), "user_id", actor.UserID.String(), "version", chart.Version)
	evt := notifications.NewSeatingEvent(notifications.EventChartUpdated, chart.ID, chart.EventID)
	evt.Count = chart.TotalSeats
	notifications.Notify(ctx, s.publisher, s.log, evt)

	return ToResponse(chart), nil
}

func (s *service) DeleteSeatingChart(ctx context.Context, actor identity.Actor, chartID uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, chartID)
	if err != nil {
		return err
	}
	if _, err := s.authz.RequireOwnership(ctx, actor, current.EventID); err != nil {
		return err
	}

	chart, err := s.mutator.Remove(ctx, chartID, func(tx *gorm.DB, chart *SeatingChart) error {
		active, err := s.ledger.ActiveSeats(ctx, tx, chart.ID)
		if err != nil {
			return fmt.Errorf("failed to check reservations: %w", err)
		}
		if len(active) > 0 {
			return fmt.Errorf("%w: %d seats still reserved", ErrActiveReservations, len(active))
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.LogChartDeleted(ctx, chart.ID.String(), actor.UserID.String())
	notifications.Notify(ctx, s.publisher, s.log,
		notifications.NewSeatingEvent(notifications.EventChartDeleted, chart.ID, chart.EventID))
	return nil
}

func (s *service) GetSeatingChart(ctx context.Context, chartID uuid.UUID) (*SeatingChartResponse, error) {
	var resp SeatingChartResponse
	err := s.cache.GetOrSet(ctx, constants.BuildChartDetailKey(chartID.String()), constants.TTL_CHART_DETAIL,
		func() (interface{}, error) {
			chart, err := s.repo.GetByID(ctx, chartID)
			if err != nil {
				return nil, err
			}
			return ToResponse(chart), nil
		}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) GetSeatingChartByEvent(ctx context.Context, eventID uuid.UUID) (*SeatingChartResponse, error) {
	var resp SeatingChartResponse
	err := s.cache.GetOrSet(ctx, constants.BuildChartByEventKey(eventID.String()), constants.TTL_CHART_DETAIL,
		func() (interface{}, error) {
			chart, err := s.repo.GetByEventID(ctx, eventID)
			if err != nil {
				return nil, err
			}
			return ToResponse(chart), nil
		}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAvailability is never cached: holds expire by the clock, not by writes.
func (s *service) GetAvailability(ctx context.Context, chartID uuid.UUID) (*AvailabilityResponse, error) {
	chart, err := s.repo.GetByID(ctx, chartID)
	if err != nil {
		return nil, err
	}

	active, err := s.ledger.ActiveSeats(ctx, nil, chartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	confirmed := make(map[SeatKey]bool, len(active))
	for _, loc := range active {
		confirmed[KeyOf(loc)] = true
	}

	return BuildAvailability(chart, ConfirmedSet(active), s.now()), nil
}

// SeatRefs converts locations into the notification payload shape.
func SeatRefs(locs []SeatLocation) []notifications.SeatRef {
	out := make([]notifications.SeatRef, 0, len(locs))
	for _, l := range locs {
		out = append(out, notifications.SeatRef{
			SectionID:  l.SectionID,
			RowID:      l.RowID,
			TableID:    l.TableID,
			SeatID:     l.SeatID,
			SeatNumber: l.SeatNumber,
		})
	}
	return out
}
