package events

import (
	"context"
	"errors"
	"fmt"

	"stepperslife/internal/shared/constants"
	"stepperslife/internal/shared/identity"
	"stepperslife/pkg/cache"
	"stepperslife/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	CreateEvent(ctx context.Context, actor identity.Actor, req CreateEventRequest) (*Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// RequireOwnership loads the event and checks the actor may manage it.
	// Admins manage every event.
	RequireOwnership(ctx context.Context, actor identity.Actor, eventID uuid.UUID) (*Event, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	if cacheService == nil {
		cacheService = cache.NewNoop()
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, cache: cacheService, log: log}
}

func (s *service) CreateEvent(ctx context.Context, actor identity.Actor, req CreateEventRequest) (*Event, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	event := &Event{
		OrganizerID: actor.UserID,
		Name:        req.Name,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		Status:      EventStatus(req.Status),
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.InfoContext(ctx, "Event Created", "event_id", event.ID.String(), "user_id", actor.UserID.String())
	return event, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := s.cache.GetOrSet(ctx, constants.BuildEventDetailKey(id.String()), constants.TTL_EVENT_DETAIL,
		func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *service) RequireOwnership(ctx context.Context, actor identity.Actor, eventID uuid.UUID) (*Event, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	// Ownership is always checked against the database, never the cache.
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	if actor.IsAdmin() || event.OrganizerID == actor.UserID {
		return event, nil
	}
	return nil, ErrForbidden
}
