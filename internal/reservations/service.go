package reservations

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

const ledgerSavepoint = "ledger_write"

type Service interface {
	// ReserveSeats records confirmed purchases of seats on a chart. Either
	// every seat is reserved or none is.
	ReserveSeats(ctx context.Context, chartID uuid.UUID, req ReserveSeatsRequest) (*ReserveSeatsResponse, error)
	// ReleaseSeats returns every seat of a cancelled ticket. Releasing a
	// ticket with nothing reserved succeeds and changes nothing.
	ReleaseSeats(ctx context.Context, ticketID string) (*ReleaseSeatsResponse, error)
	ListReservations(ctx context.Context, ticketID string) ([]SeatReservation, error)
}

type service struct {
	repo      Repository
	mutator   *seatingcharts.Mutator
	publisher notifications.Publisher
	log       *logger.Logger
	now       func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(repo Repository, mutator *seatingcharts.Mutator, publisher notifications.Publisher, log *logger.Logger, opts ...Option) Service {
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}
	if log == nil {
		log = logger.GetDefault()
	}
	s := &service{repo: repo, mutator: mutator, publisher: publisher, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ReserveSeats(ctx context.Context, chartID uuid.UUID, req ReserveSeatsRequest) (*ReserveSeatsResponse, error) {
	if err := validateReserveRequest(req); err != nil {
		return nil, err
	}

	var created []SeatReservation
	chart, err := s.mutator.Mutate(ctx, chartID, func(tx *gorm.DB, chart *seatingcharts.SeatingChart) error {
		created = nil
		sections := chart.SectionList()

		matches, err := resolveClaims(sections, req.Seats)
		if err != nil {
			return err
		}

		// Every seat is checked against the ledger before anything is written.
		active, err := s.repo.ActiveByChart(ctx, tx, chart.ID)
		if err != nil {
			return fmt.Errorf("failed to read reservations: %w", err)
		}
		reserved := make(map[seatingcharts.SeatKey]bool, len(active))
		for i := range active {
			reserved[active[i].Key()] = true
		}
		for _, m := range matches {
			if reserved[seatingcharts.KeyOf(m.Location)] {
				return &seatingcharts.SeatConflictError{Seat: m.Location, Reason: "already reserved"}
			}
		}

		now := s.now().UTC()
		for _, m := range matches {
			if err := checkReservable(m, req.SessionID, now); err != nil {
				return err
			}
		}

		rows := make([]SeatReservation, 0, len(matches))
		for _, m := range matches {
			m.Seat.Confirm()
			rows = append(rows, SeatReservation{
				EventID:        chart.EventID,
				SeatingChartID: chart.ID,
				TicketID:       req.TicketID,
				OrderID:        req.OrderID,
				SectionID:      m.Location.SectionID,
				RowID:          m.Location.RowID,
				TableID:        m.Location.TableID,
				SeatID:         m.Location.SeatID,
				SeatNumber:     m.Location.SeatNumber,
				Status:         StatusReserved,
				ReservedAt:     now,
			})
		}
		if err := tx.SavePoint(ledgerSavepoint).Error; err != nil {
			return fmt.Errorf("failed to write reservations: %w", err)
		}
		if err := s.repo.CreateBatch(ctx, tx, rows); err != nil {
			if isUniqueViolation(err) {
				return s.lostLedgerRace(ctx, tx, chart.ID, matches)
			}
			return fmt.Errorf("failed to write reservations: %w", err)
		}

		chart.SetSections(sections)
		chart.ReservedSeats += len(rows)
		created = rows
		return nil
	})
	if err != nil {
		if errors.Is(err, seatingcharts.ErrSeatConflict) {
			s.log.LogSeatConflict(ctx, chartID.String(), "reserve", err)
		}
		return nil, err
	}

	locs := make([]seatingcharts.SeatLocation, 0, len(created))
	for i := range created {
		locs = append(locs, created[i].Location())
	}
	s.log.LogSeatsReserved(ctx, chart.ID.String(), req.TicketID, req.OrderID, len(created))
	evt := notifications.NewSeatingEvent(notifications.EventSeatsReserved, chart.ID, chart.EventID)
	evt.TicketID = req.TicketID
	evt.OrderID = req.OrderID
	evt.SessionID = req.SessionID
	evt.Seats = seatingcharts.SeatRefs(locs)
	evt.Count = len(created)
	notifications.Notify(ctx, s.publisher, s.log, evt)

	return &ReserveSeatsResponse{
		ChartID:       chart.ID,
		TicketID:      req.TicketID,
		OrderID:       req.OrderID,
		Reservations:  created,
		ReservedSeats: chart.ReservedSeats,
	}, nil
}

func (s *service) ReleaseSeats(ctx context.Context, ticketID string) (*ReleaseSeatsResponse, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, fmt.Errorf("%w: ticket id is required", seatingcharts.ErrInvalidRequest)
	}

	active, err := s.repo.ActiveByTicket(ctx, nil, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}
	result := &ReleaseSeatsResponse{TicketID: ticketID, Seats: []SeatReservation{}}
	if len(active) == 0 {
		return result, nil
	}

	// A ticket normally covers one chart, but nothing forbids more.
	var chartIDs []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for i := range active {
		if !seen[active[i].SeatingChartID] {
			seen[active[i].SeatingChartID] = true
			chartIDs = append(chartIDs, active[i].SeatingChartID)
		}
	}

	for _, chartID := range chartIDs {
		released, chart, err := s.releaseOnChart(ctx, chartID, ticketID)
		if err != nil {
			return nil, err
		}
		if len(released) == 0 {
			continue
		}
		result.Seats = append(result.Seats, released...)

		if chart != nil {
			locs := make([]seatingcharts.SeatLocation, 0, len(released))
			for i := range released {
				locs = append(locs, released[i].Location())
			}
			evt := notifications.NewSeatingEvent(notifications.EventSeatsReleased, chart.ID, chart.EventID)
			evt.TicketID = ticketID
			evt.Seats = seatingcharts.SeatRefs(locs)
			evt.Count = len(released)
			notifications.Notify(ctx, s.publisher, s.log, evt)
		}
	}

	result.Released = len(result.Seats)
	s.log.LogSeatsReleased(ctx, ticketID, result.Released)
	return result, nil
}

// releaseOnChart releases the ticket's entries on one chart and frees the
// matching in-chart seats. The chart is nil when it no longer exists.
func (s *service) releaseOnChart(ctx context.Context, chartID uuid.UUID, ticketID string) ([]SeatReservation, *seatingcharts.SeatingChart, error) {
	var released []SeatReservation
	chart, err := s.mutator.Mutate(ctx, chartID, func(tx *gorm.DB, chart *seatingcharts.SeatingChart) error {
		released = nil
		rows, err := s.repo.ActiveByTicket(ctx, tx, ticketID)
		if err != nil {
			return fmt.Errorf("failed to read reservations: %w", err)
		}

		now := s.now().UTC()
		ids := make([]uuid.UUID, 0, len(rows))
		keys := make(map[seatingcharts.SeatKey]bool, len(rows))
		for i := range rows {
			if rows[i].SeatingChartID != chartID {
				continue
			}
			ids = append(ids, rows[i].ID)
			keys[rows[i].Key()] = true
			rows[i].Status = StatusReleased
			rows[i].ReleasedAt = &now
			released = append(released, rows[i])
		}
		if len(ids) == 0 {
			return seatingcharts.ErrNoChanges
		}

		n, err := s.repo.MarkReleased(ctx, tx, ids, now)
		if err != nil {
			return fmt.Errorf("failed to release reservations: %w", err)
		}

		sections := chart.SectionList()
		seatingcharts.WalkSeats(sections, func(loc seatingcharts.SeatLocation, seat *seatingcharts.Seat) bool {
			if keys[seatingcharts.KeyOf(loc)] && seat.Status == seatingcharts.SeatReserved && !seat.HasSession() {
				seat.Free()
			}
			return true
		})
		chart.SetSections(sections)
		chart.ReservedSeats = max(0, chart.ReservedSeats-int(n))
		return nil
	})

	if errors.Is(err, seatingcharts.ErrChartNotFound) {
		return s.releaseOrphaned(ctx, chartID, ticketID)
	}
	if err != nil {
		return nil, nil, err
	}
	return released, chart, nil
}

// releaseOrphaned closes entries whose chart is gone.
func (s *service) releaseOrphaned(ctx context.Context, chartID uuid.UUID, ticketID string) ([]SeatReservation, *seatingcharts.SeatingChart, error) {
	rows, err := s.repo.ActiveByTicket(ctx, nil, ticketID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read reservations: %w", err)
	}
	now := s.now().UTC()
	var ids []uuid.UUID
	var released []SeatReservation
	for i := range rows {
		if rows[i].SeatingChartID == chartID {
			ids = append(ids, rows[i].ID)
			rows[i].Status = StatusReleased
			rows[i].ReleasedAt = &now
			released = append(released, rows[i])
		}
	}
	if _, err := s.repo.MarkReleased(ctx, nil, ids, now); err != nil {
		return nil, nil, fmt.Errorf("failed to release reservations: %w", err)
	}
	s.log.WarnContext(ctx, "released reservations of a missing seating chart",
		"chart_id", chartID.String(), "ticket_id", ticketID, "count", len(ids))
	return released, nil, nil
}

func (s *service) ListReservations(ctx context.Context, ticketID string) ([]SeatReservation, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, fmt.Errorf("%w: ticket id is required", seatingcharts.ErrInvalidRequest)
	}
	rows, err := s.repo.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	if rows == nil {
		rows = []SeatReservation{}
	}
	return rows, nil
}

func validateReserveRequest(req ReserveSeatsRequest) error {
	switch {
	case strings.TrimSpace(req.TicketID) == "":
		return fmt.Errorf("%w: ticket id is required", seatingcharts.ErrInvalidRequest)
	case strings.TrimSpace(req.OrderID) == "":
		return fmt.Errorf("%w: order id is required", seatingcharts.ErrInvalidRequest)
	case len(req.Seats) == 0:
		return fmt.Errorf("%w: at least one seat is required", seatingcharts.ErrInvalidRequest)
	}
	for i, claim := range req.Seats {
		if claim.SectionID == "" {
			return fmt.Errorf("%w: seat %d has no section", seatingcharts.ErrInvalidRequest, i)
		}
		if claim.SeatID == "" && claim.SeatNumber == "" {
			return fmt.Errorf("%w: seat %d needs a seat id or number", seatingcharts.ErrInvalidRequest, i)
		}
		if claim.RowID != "" && claim.TableID != "" {
			return fmt.Errorf("%w: seat %d names both a row and a table", seatingcharts.ErrInvalidRequest, i)
		}
	}
	return nil
}

// resolveClaims finds the single seat each claim names.
func resolveClaims(sections []seatingcharts.Section, claims []SeatClaim) ([]seatingcharts.SeatMatch, error) {
	out := make([]seatingcharts.SeatMatch, 0, len(claims))
	seen := make(map[seatingcharts.SeatKey]bool, len(claims))
	for _, claim := range claims {
		sel := seatingcharts.SeatSelector{
			SectionID:  claim.SectionID,
			RowID:      claim.RowID,
			TableID:    claim.TableID,
			SeatID:     claim.SeatID,
			SeatNumber: claim.SeatNumber,
		}
		found := seatingcharts.FindSeats(sections, sel)
		switch {
		case len(found) == 0:
			return nil, fmt.Errorf("%w: %s", seatingcharts.ErrSeatNotFound, sel)
		case len(found) > 1:
			return nil, fmt.Errorf("%w: %s matches %d seats", seatingcharts.ErrInvalidRequest, sel, len(found))
		}
		key := seatingcharts.KeyOf(found[0].Location)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s requested twice", seatingcharts.ErrInvalidRequest, sel)
		}
		seen[key] = true
		out = append(out, found[0])
	}
	return out, nil
}

// checkReservable rejects seats that another buyer holds or that cannot be
// sold. With a sessionID, the seat must be held by that session.
func checkReservable(m seatingcharts.SeatMatch, sessionID string, now time.Time) error {
	seat := m.Seat
	conflict := func(reason string) error {
		return &seatingcharts.SeatConflictError{Seat: m.Location, Reason: reason}
	}

	if seat.Status == seatingcharts.SeatUnavailable || seat.Type == seatingcharts.SeatBlocked {
		return conflict("seat is blocked")
	}
	if sessionID != "" {
		if !seat.HeldAt(now) || seat.SessionID != sessionID {
			return conflict("not held by this session")
		}
		return nil
	}
	if seat.HeldAt(now) {
		return conflict("held by a checkout session; pass session_id to convert the hold")
	}
	if seat.Status == seatingcharts.SeatReserved && !seat.HasSession() {
		return conflict("marked reserved in the chart")
	}
	return nil
}

// lostLedgerRace names the claimed seat that another writer reserved
// between the ledger read and the insert. The transaction is rolled back to
// ledgerSavepoint so the ledger can be read again.
func (s *service) lostLedgerRace(ctx context.Context, tx *gorm.DB, chartID uuid.UUID, matches []seatingcharts.SeatMatch) error {
	if err := tx.RollbackTo(ledgerSavepoint).Error; err == nil {
		if active, err := s.repo.ActiveByChart(ctx, tx, chartID); err == nil {
			taken := make(map[seatingcharts.SeatKey]bool, len(active))
			for i := range active {
				taken[active[i].Key()] = true
			}
			for _, m := range matches {
				if taken[seatingcharts.KeyOf(m.Location)] {
					return &seatingcharts.SeatConflictError{Seat: m.Location, Reason: "reserved by a concurrent request"}
				}
			}
		}
	}
	return fmt.Errorf("%w: a claimed seat was reserved by a concurrent request", seatingcharts.ErrSeatConflict)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
