package reservations

import (
	"context"
	"testing"
	"time"

	"stepperslife/internal/events"
	"stepperslife/internal/holds"
	"stepperslife/internal/notifications"
	"stepperslife/internal/notifications/notificationstest"
	"stepperslife/internal/seatingcharts"
	"stepperslife/internal/shared/identity"
	"stepperslife/internal/shared/testutil"
	"stepperslife/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type ledgerFixture struct {
	db        *gorm.DB
	charts    seatingcharts.Repository
	repo      Repository
	mutator   *seatingcharts.Mutator
	publisher *notificationstest.RecordingPublisher
	svc       Service
	now       time.Time
	chart     *seatingcharts.SeatingChart
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := testutil.OpenSQLite(t, &seatingcharts.SeatingChart{}, &SeatReservation{})
	require.NoError(t, EnsureIndexes(db))

	f := &ledgerFixture{
		db:        db,
		charts:    seatingcharts.NewRepository(db),
		repo:      NewRepository(db),
		publisher: &notificationstest.RecordingPublisher{},
		now:       time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC),
	}
	log := logger.Discard()
	f.mutator = seatingcharts.NewMutator(f.charts, nil, nil, 3, log)
	f.svc = NewService(f.repo, f.mutator, f.publisher, log, WithClock(func() time.Time { return f.now }))

	chart := &seatingcharts.SeatingChart{
		EventID:      uuid.New(),
		Name:         "Main Floor",
		SeatingStyle: seatingcharts.StyleTableBased,
		IsActive:     true,
	}
	chart.SetSections([]seatingcharts.Section{seatingcharts.TableSection("s1", "Floor", []string{"t1"}, 4)})
	require.NoError(t, f.charts.Create(context.Background(), chart))
	f.chart = chart
	return f
}

func (f *ledgerFixture) reload(t *testing.T) *seatingcharts.SeatingChart {
	t.Helper()
	chart, err := f.charts.GetByID(context.Background(), f.chart.ID)
	require.NoError(t, err)
	return chart
}

func (f *ledgerFixture) seat(t *testing.T, seatID string) seatingcharts.Seat {
	t.Helper()
	found := seatingcharts.FindSeats(f.reload(t).SectionList(), seatingcharts.SeatSelector{SectionID: "s1", SeatID: seatID})
	require.Len(t, found, 1)
	return *found[0].Seat
}

func (f *ledgerFixture) hold(t *testing.T, seatID, sessionID string, expiresAt time.Time) {
	t.Helper()
	_, err := f.mutator.Mutate(context.Background(), f.chart.ID, func(_ *gorm.DB, chart *seatingcharts.SeatingChart) error {
		sections := chart.SectionList()
		found := seatingcharts.FindSeats(sections, seatingcharts.SeatSelector{SeatID: seatID})
		require.Len(t, found, 1)
		found[0].Seat.Hold(sessionID, expiresAt)
		chart.SetSections(sections)
		return nil
	})
	require.NoError(t, err)
}

func reserveReq(ticketID string, seatIDs ...string) ReserveSeatsRequest {
	req := ReserveSeatsRequest{TicketID: ticketID, OrderID: "ord-" + ticketID}
	for _, id := range seatIDs {
		req.Seats = append(req.Seats, SeatClaim{SectionID: "s1", SeatID: id})
	}
	return req
}

func TestReserveSeats_ThenConflictOnSecondReserve(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	req := ReserveSeatsRequest{
		TicketID: "tk1",
		OrderID:  "ord1",
		Seats:    []SeatClaim{{SectionID: "s1", SeatID: "t1-seat-2", SeatNumber: "2"}},
	}
	res, err := f.svc.ReserveSeats(ctx, f.chart.ID, req)
	require.NoError(t, err)
	require.Len(t, res.Reservations, 1)
	assert.Equal(t, 1, res.ReservedSeats)

	rows, err := f.repo.ListByTicket(ctx, "tk1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusReserved, rows[0].Status)
	assert.Equal(t, "t1", rows[0].TableID)
	assert.Equal(t, f.chart.EventID, rows[0].EventID)
	assert.Nil(t, rows[0].ReleasedAt)

	seat := f.seat(t, "t1-seat-2")
	assert.Equal(t, seatingcharts.SeatReserved, seat.Status)
	assert.False(t, seat.HasSession())

	_, err = f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk2", "t1-seat-2"))
	require.ErrorIs(t, err, seatingcharts.ErrSeatConflict)
	assert.Equal(t, seatingcharts.KindConflict, seatingcharts.KindOf(err))
	var conflict *seatingcharts.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "t1-seat-2", conflict.Seat.SeatID)

	active, err := f.repo.ActiveByChart(ctx, nil, f.chart.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, 1, f.reload(t).ReservedSeats)
	assert.Equal(t, []notifications.EventType{notifications.EventSeatsReserved}, f.publisher.Types())
}

func TestReserveSeats_ChecksEverySeatBeforeWriting(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t1-seat-3"))
	require.NoError(t, err)

	_, err = f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk2", "t1-seat-1", "t1-seat-3"))
	require.ErrorIs(t, err, seatingcharts.ErrSeatConflict)

	rows, err := f.repo.ListByTicket(ctx, "tk2")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, seatingcharts.SeatAvailable, f.seat(t, "t1-seat-1").Status)
	assert.Equal(t, 1, f.reload(t).ReservedSeats)
}

func TestReserveSeats_ByTableAndNumber(t *testing.T) {
	f := newLedgerFixture(t)

	res, err := f.svc.ReserveSeats(context.Background(), f.chart.ID, ReserveSeatsRequest{
		TicketID: "tk1",
		OrderID:  "ord1",
		Seats:    []SeatClaim{{SectionID: "s1", TableID: "t1", SeatNumber: "4"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "t1-seat-4", res.Reservations[0].SeatID)
}

func TestReserveSeats_Rejections(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t9-seat-1"))
	assert.ErrorIs(t, err, seatingcharts.ErrSeatNotFound)

	_, err = f.svc.ReserveSeats(ctx, uuid.New(), reserveReq("tk1", "t1-seat-1"))
	assert.ErrorIs(t, err, seatingcharts.ErrChartNotFound)

	_, err = f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t1-seat-1", "t1-seat-1"))
	assert.ErrorIs(t, err, seatingcharts.ErrInvalidRequest)

	_, err = f.svc.ReserveSeats(ctx, f.chart.ID, ReserveSeatsRequest{TicketID: "tk1", OrderID: "ord1"})
	assert.ErrorIs(t, err, seatingcharts.ErrInvalidRequest)

	_, err = f.mutator.Mutate(ctx, f.chart.ID, func(_ *gorm.DB, chart *seatingcharts.SeatingChart) error {
		sections := chart.SectionList()
		sections[0].Tables[0].Seats[0].Status = seatingcharts.SeatUnavailable
		chart.SetSections(sections)
		return nil
	})
	require.NoError(t, err)
	_, err = f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t1-seat-1"))
	assert.ErrorIs(t, err, seatingcharts.ErrSeatConflict)

	rows, err := f.repo.ListByTicket(ctx, "tk1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReserveSeats_HoldConversion(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.hold(t, "t1-seat-1", "sess-1", f.now.Add(10*time.Minute))

	// A live hold blocks a direct reservation and says how to convert it
	_, err := f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk0", "t1-seat-1"))
	require.ErrorIs(t, err, seatingcharts.ErrSeatConflict)
	var conflict *seatingcharts.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Reason, "pass session_id")
	assert.NotContains(t, conflict.Reason, "another session")

	other := reserveReq("tk2", "t1-seat-1")
	other.SessionID = "sess-2"
	_, err = f.svc.ReserveSeats(ctx, f.chart.ID, other)
	require.ErrorIs(t, err, seatingcharts.ErrSeatConflict)

	// A seat the session never held cannot be converted
	mixed := reserveReq("tk1", "t1-seat-1", "t1-seat-2")
	mixed.SessionID = "sess-1"
	_, err = f.svc.ReserveSeats(ctx, f.chart.ID, mixed)
	require.ErrorIs(t, err, seatingcharts.ErrSeatConflict)

	own := reserveReq("tk1", "t1-seat-1")
	own.SessionID = "sess-1"
	res, err := f.svc.ReserveSeats(ctx, f.chart.ID, own)
	require.NoError(t, err)
	assert.Len(t, res.Reservations, 1)

	seat := f.seat(t, "t1-seat-1")
	assert.Equal(t, seatingcharts.SeatReserved, seat.Status)
	assert.Empty(t, seat.SessionID)
	assert.Zero(t, seat.SessionExpiry)
}

func TestReserveSeats_ExpiredHoldDoesNotBlock(t *testing.T) {
	f := newLedgerFixture(t)
	f.hold(t, "t1-seat-1", "sess-1", f.now.Add(-time.Second))

	_, err := f.svc.ReserveSeats(context.Background(), f.chart.ID, reserveReq("tk1", "t1-seat-1"))
	require.NoError(t, err)

	expired := reserveReq("tk2", "t1-seat-2")
	f.hold(t, "t1-seat-2", "sess-2", f.now.Add(-time.Second))
	expired.SessionID = "sess-2"
	_, err = f.svc.ReserveSeats(context.Background(), f.chart.ID, expired)
	assert.ErrorIs(t, err, seatingcharts.ErrSeatConflict)
}

func TestReleaseSeats_AndIdempotence(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t1-seat-2"))
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)
	res, err := f.svc.ReleaseSeats(ctx, "tk1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Released)

	rows, err := f.repo.ListByTicket(ctx, "tk1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, StatusReleased, rows[0].Status)
	require.NotNil(t, rows[0].ReleasedAt)
	assert.True(t, rows[0].ReleasedAt.Equal(f.now))

	chart := f.reload(t)
	assert.Equal(t, 0, chart.ReservedSeats)
	assert.Equal(t, seatingcharts.SeatAvailable, f.seat(t, "t1-seat-2").Status)

	again, err := f.svc.ReleaseSeats(ctx, "tk1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Released)
	assert.Equal(t, 0, f.reload(t).ReservedSeats)
	assert.Equal(t, chart.Version, f.reload(t).Version)

	// The seat can be sold again
	_, err = f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk3", "t1-seat-2"))
	require.NoError(t, err)

	assert.Equal(t, []notifications.EventType{
		notifications.EventSeatsReserved,
		notifications.EventSeatsReleased,
		notifications.EventSeatsReserved,
	}, f.publisher.Types())
}

func TestReleaseSeats_FloorsCounterAtZero(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t1-seat-1", "t1-seat-2"))
	require.NoError(t, err)

	// Simulate earlier drift of the counter
	_, err = f.mutator.Mutate(ctx, f.chart.ID, func(_ *gorm.DB, chart *seatingcharts.SeatingChart) error {
		chart.ReservedSeats = 1
		return nil
	})
	require.NoError(t, err)

	res, err := f.svc.ReleaseSeats(ctx, "tk1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Released)
	assert.Equal(t, 0, f.reload(t).ReservedSeats)
}

func TestReleaseSeats_UnknownTicket(t *testing.T) {
	f := newLedgerFixture(t)

	res, err := f.svc.ReleaseSeats(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Released)
	assert.Empty(t, f.publisher.Events)

	_, err = f.svc.ReleaseSeats(context.Background(), " ")
	assert.ErrorIs(t, err, seatingcharts.ErrInvalidRequest)
}

func TestActiveSeatIndex_RejectsSecondActiveRow(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	row := func(ticket string) []SeatReservation {
		return []SeatReservation{{
			EventID:        f.chart.EventID,
			SeatingChartID: f.chart.ID,
			TicketID:       ticket,
			OrderID:        "ord",
			SectionID:      "s1",
			TableID:        "t1",
			SeatID:         "t1-seat-1",
			SeatNumber:     "1",
			ReservedAt:     f.now,
		}}
	}

	first := row("tk1")
	require.NoError(t, f.repo.CreateBatch(ctx, nil, first))
	err := f.repo.CreateBatch(ctx, nil, row("tk2"))
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	// Once released, the seat may be reserved again
	n, err := f.repo.MarkReleased(ctx, nil, []uuid.UUID{first[0].ID}, f.now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, f.repo.CreateBatch(ctx, nil, row("tk2")))
}

type allowAll struct{}

func (allowAll) RequireOwnership(_ context.Context, _ identity.Actor, eventID uuid.UUID) (*events.Event, error) {
	return &events.Event{ID: eventID}, nil
}

func TestDeleteSeatingChart_GuardedByLedger(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	admin := identity.Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
	charts := seatingcharts.NewService(f.charts, f.mutator, allowAll{}, f.repo, nil, nil, logger.Discard())

	_, err := f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t1-seat-2"))
	require.NoError(t, err)

	err = charts.DeleteSeatingChart(ctx, admin, f.chart.ID)
	require.ErrorIs(t, err, seatingcharts.ErrActiveReservations)

	_, err = f.svc.ReleaseSeats(ctx, "tk1")
	require.NoError(t, err)

	require.NoError(t, charts.DeleteSeatingChart(ctx, admin, f.chart.ID))
	_, err = f.charts.GetByID(ctx, f.chart.ID)
	assert.ErrorIs(t, err, seatingcharts.ErrChartNotFound)

	// History survives the chart
	rows, err := f.svc.ListReservations(ctx, "tk1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestReshapeKeepsSoldSeatsOutOfHolds(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	admin := identity.Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
	charts := seatingcharts.NewService(f.charts, f.mutator, allowAll{}, f.repo, nil, nil, logger.Discard(),
		seatingcharts.WithClock(func() time.Time { return f.now }))
	holdService := holds.NewService(f.charts, f.mutator, nil, logger.Discard(),
		holds.WithClock(func() time.Time { return f.now }))

	_, err := f.svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t1-seat-1"))
	require.NoError(t, err)

	// The organizer resends the layout with every seat available
	sections := []seatingcharts.Section{seatingcharts.TableSection("s1", "Floor", []string{"t1"}, 4)}
	_, err = charts.UpdateSeatingChart(ctx, admin, f.chart.ID, seatingcharts.UpdateSeatingChartRequest{Sections: &sections})
	require.NoError(t, err)

	sold := f.seat(t, "t1-seat-1")
	assert.Equal(t, seatingcharts.SeatReserved, sold.Status)
	assert.False(t, sold.HasSession())

	_, err = holdService.HoldSeatsForSession(ctx, f.chart.EventID, holds.HoldSeatsRequest{
		SessionID: "sess-x",
		Seats:     []holds.SeatRequest{{TableID: "t1", SeatNumber: "1"}},
	})
	require.ErrorIs(t, err, seatingcharts.ErrSeatConflict)

	availability, err := charts.GetAvailability(ctx, f.chart.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, availability.Counts[seatingcharts.StateConfirmed])
	assert.Equal(t, 0, availability.Counts[seatingcharts.StateHeld])
}

// rivalLedger lets another ticket take a seat right after the service has read
// the ledger, as a writer that skipped the chart lock would.
type rivalLedger struct {
	Repository
	seatID string
	done   bool
}

func (r *rivalLedger) ActiveByChart(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) ([]SeatReservation, error) {
	rows, err := r.Repository.ActiveByChart(ctx, tx, chartID)
	if err != nil || r.done {
		return rows, err
	}
	r.done = true
	rival := []SeatReservation{{
		SeatingChartID: chartID,
		TicketID:       "tk-rival",
		OrderID:        "ord-rival",
		SectionID:      "s1",
		SeatID:         r.seatID,
		Status:         StatusReserved,
		ReservedAt:     time.Now().UTC(),
	}}
	return rows, r.Repository.CreateBatch(ctx, tx, rival)
}

func TestReserveSeats_LostRaceNamesTheTakenSeat(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	svc := NewService(&rivalLedger{Repository: f.repo, seatID: "t1-seat-3"}, f.mutator, f.publisher, logger.Discard(),
		WithClock(func() time.Time { return f.now }))

	_, err := svc.ReserveSeats(ctx, f.chart.ID, reserveReq("tk1", "t1-seat-1", "t1-seat-3"))
	require.ErrorIs(t, err, seatingcharts.ErrSeatConflict)
	var conflict *seatingcharts.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "t1-seat-3", conflict.Seat.SeatID)
	assert.Equal(t, "reserved by a concurrent request", conflict.Reason)

	rows, err := f.repo.ListByTicket(ctx, "tk1")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, seatingcharts.SeatAvailable, f.seat(t, "t1-seat-1").Status)
	assert.Empty(t, f.publisher.Types())
}
