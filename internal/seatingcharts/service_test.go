package seatingcharts

import (
	"context"
	"errors"
	"testing"
	"time"

	"stepperslife/internal/events"
	"stepperslife/internal/notifications"
	"stepperslife/internal/notifications/notificationstest"
	"stepperslife/internal/shared/identity"
	"stepperslife/internal/shared/testutil"
	"stepperslife/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockAuthorizer struct {
	mock.Mock
}

func (m *mockAuthorizer) RequireOwnership(ctx context.Context, actor identity.Actor, eventID uuid.UUID) (*events.Event, error) {
	args := m.Called(ctx, actor, eventID)
	if ev, ok := args.Get(0).(*events.Event); ok {
		return ev, args.Error(1)
	}
	return nil, args.Error(1)
}

type fakeLedger struct {
	active map[uuid.UUID][]SeatLocation
	err    error
}

func (f *fakeLedger) ActiveSeats(_ context.Context, _ *gorm.DB, chartID uuid.UUID) ([]SeatLocation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.active[chartID], nil
}

type chartFixture struct {
	db        *gorm.DB
	repo      Repository
	authz     *mockAuthorizer
	ledger    *fakeLedger
	publisher *notificationstest.RecordingPublisher
	svc       Service
	now       time.Time
	organizer identity.Actor
	eventID   uuid.UUID
}

func newChartFixture(t *testing.T) *chartFixture {
	t.Helper()
	db := testutil.OpenSQLite(t, &SeatingChart{})
	f := &chartFixture{
		db:        db,
		repo:      NewRepository(db),
		authz:     &mockAuthorizer{},
		ledger:    &fakeLedger{active: map[uuid.UUID][]SeatLocation{}},
		publisher: &notificationstest.RecordingPublisher{},
		now:       time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC),
		organizer: identity.Actor{UserID: uuid.New(), Role: identity.RoleOrganizer},
		eventID:   uuid.New(),
	}
	log := logger.Discard()
	mutator := NewMutator(f.repo, NewNopLocker(), nil, 3, log)
	f.svc = NewService(f.repo, mutator, f.authz, f.ledger, nil, f.publisher, log,
		WithClock(func() time.Time { return f.now }))
	return f
}

func (f *chartFixture) allowOwner() {
	f.authz.On("RequireOwnership", mock.Anything, f.organizer, f.eventID).
		Return(&events.Event{ID: f.eventID, OrganizerID: f.organizer.UserID}, nil)
}

func (f *chartFixture) createTableChart(t *testing.T) *SeatingChartResponse {
	t.Helper()
	chart, err := f.svc.CreateSeatingChart(context.Background(), f.organizer, CreateSeatingChartRequest{
		EventID:      f.eventID.String(),
		Name:         "Main Floor",
		SeatingStyle: StyleTableBased,
		Sections:     []Section{TableSection("s1", "Floor", []string{"t1"}, 4)},
	})
	require.NoError(t, err)
	return chart
}

func TestCreateSeatingChart(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()

	chart := f.createTableChart(t)

	assert.NotEqual(t, uuid.Nil, chart.ID)
	assert.Equal(t, 4, chart.TotalSeats)
	assert.Equal(t, 0, chart.ReservedSeats)
	assert.Equal(t, 1, chart.Version)
	assert.True(t, chart.IsActive)
	assert.Equal(t, []notifications.EventType{notifications.EventChartCreated}, f.publisher.Types())

	stored, err := f.repo.GetByID(context.Background(), chart.ID)
	require.NoError(t, err)
	assert.Len(t, stored.SectionList()[0].Tables[0].Seats, 4)
	assert.Equal(t, "t1-seat-1", stored.SectionList()[0].Tables[0].Seats[0].ID)
}

func TestCreateSeatingChart_NotOwner(t *testing.T) {
	f := newChartFixture(t)
	f.authz.On("RequireOwnership", mock.Anything, mock.Anything, f.eventID).Return(nil, events.ErrForbidden)

	_, err := f.svc.CreateSeatingChart(context.Background(), f.organizer, CreateSeatingChartRequest{
		EventID:      f.eventID.String(),
		Name:         "Main Floor",
		SeatingStyle: StyleTableBased,
	})

	require.ErrorIs(t, err, events.ErrForbidden)
	assert.Equal(t, KindForbidden, KindOf(err))
	ids, err := f.repo.ListActiveIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Empty(t, f.publisher.Events)
}

func TestCreateSeatingChart_InvalidLayout(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()

	section := TableSection("s1", "Floor", []string{"t1"}, 4)
	section.Tables[0].Capacity = 8
	_, err := f.svc.CreateSeatingChart(context.Background(), f.organizer, CreateSeatingChartRequest{
		EventID:      f.eventID.String(),
		Name:         "Main Floor",
		SeatingStyle: StyleTableBased,
		Sections:     []Section{section},
	})

	require.ErrorIs(t, err, ErrInvalidLayout)
	assert.Equal(t, 400, HTTPStatus(err))
}

func TestUpdateSeatingChart_SparsePatch(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()
	created := f.createTableChart(t)

	name := "Ballroom"
	updated, err := f.svc.UpdateSeatingChart(context.Background(), f.organizer, created.ID,
		UpdateSeatingChartRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Ballroom", updated.Name)
	assert.Equal(t, StyleTableBased, updated.SeatingStyle)
	assert.Equal(t, 4, updated.TotalSeats)
	assert.Equal(t, created.Sections, updated.Sections)
	assert.Equal(t, 2, updated.Version)
}

func TestUpdateSeatingChart_ReplacesSections(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()
	created := f.createTableChart(t)

	sections := []Section{
		TableSection("s1", "Floor", []string{"t1", "t2"}, 6),
		RowSection("s2", "Balcony", []string{"A"}, 10),
	}
	style := StyleMixed
	updated, err := f.svc.UpdateSeatingChart(context.Background(), f.organizer, created.ID,
		UpdateSeatingChartRequest{Sections: &sections, SeatingStyle: &style})
	require.NoError(t, err)

	assert.Equal(t, 22, updated.TotalSeats)
	assert.Len(t, updated.Sections, 2)

	// A rejected layout leaves the stored chart alone
	bad := []Section{TableSection("s1", "Floor", []string{"t1"}, 2), TableSection("s1", "Dup", []string{"t2"}, 2)}
	_, err = f.svc.UpdateSeatingChart(context.Background(), f.organizer, created.ID,
		UpdateSeatingChartRequest{Sections: &bad})
	require.ErrorIs(t, err, ErrInvalidLayout)

	stored, err := f.repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 22, stored.TotalSeats)
	assert.Equal(t, 2, stored.Version)
}

func TestUpdateSeatingChart_UnknownChart(t *testing.T) {
	f := newChartFixture(t)
	name := "x"
	_, err := f.svc.UpdateSeatingChart(context.Background(), f.organizer, uuid.New(), UpdateSeatingChartRequest{Name: &name})
	require.ErrorIs(t, err, ErrChartNotFound)
	assert.Equal(t, 404, HTTPStatus(err))
}

func TestDeleteSeatingChart_RefusedWithActiveReservations(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()
	created := f.createTableChart(t)
	f.ledger.active[created.ID] = []SeatLocation{{SectionID: "s1", TableID: "t1", SeatID: "t1-seat-1", SeatNumber: "1"}}

	err := f.svc.DeleteSeatingChart(context.Background(), f.organizer, created.ID)

	require.ErrorIs(t, err, ErrActiveReservations)
	assert.Equal(t, KindInvariantGuard, KindOf(err))
	assert.Equal(t, 409, HTTPStatus(err))
	_, err = f.repo.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestDeleteSeatingChart(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()
	created := f.createTableChart(t)

	require.NoError(t, f.svc.DeleteSeatingChart(context.Background(), f.organizer, created.ID))

	_, err := f.svc.GetSeatingChart(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrChartNotFound)
	assert.Equal(t, []notifications.EventType{
		notifications.EventChartCreated,
		notifications.EventChartDeleted,
	}, f.publisher.Types())
}

func TestGetSeatingChartByEvent(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()
	created := f.createTableChart(t)

	got, err := f.svc.GetSeatingChartByEvent(context.Background(), f.eventID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.GetSeatingChartByEvent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrChartNotFound)
}

func TestGetAvailability_MergesLedger(t *testing.T) {
	f := newChartFixture(t)
	f.allowOwner()
	created := f.createTableChart(t)

	mutator := NewMutator(f.repo, nil, nil, 1, logger.Discard())
	_, err := mutator.Mutate(context.Background(), created.ID, func(_ *gorm.DB, chart *SeatingChart) error {
		sections := chart.SectionList()
		seats := sections[0].Tables[0].Seats
		seats[0].Hold("sess-1", f.now.Add(10*time.Minute))
		seats[1].Hold("sess-2", f.now.Add(-time.Minute))
		seats[2].Status = SeatUnavailable
		chart.SetSections(sections)
		return nil
	})
	require.NoError(t, err)
	f.ledger.active[created.ID] = []SeatLocation{{SectionID: "s1", TableID: "t1", SeatID: "t1-seat-4", SeatNumber: "4"}}

	avail, err := f.svc.GetAvailability(context.Background(), created.ID)
	require.NoError(t, err)

	states := map[string]SeatState{}
	for _, seat := range avail.Seats {
		states[seat.SeatID] = seat.State
	}
	assert.Equal(t, map[string]SeatState{
		"t1-seat-1": StateHeld,
		"t1-seat-2": StateAvailable,
		"t1-seat-3": StateBlocked,
		"t1-seat-4": StateConfirmed,
	}, states)
	assert.Equal(t, 1, avail.Counts[StateHeld])
	require.NotNil(t, avail.Seats[0].HeldUntil)
	assert.True(t, avail.Seats[0].HeldUntil.Equal(f.now.Add(10*time.Minute)))
}

// flakyRepo loses the version race for the first failures writes.
type flakyRepo struct {
	Repository
	failures int
	calls    *int
}

func newFlakyRepo(base Repository, failures int) flakyRepo {
	return flakyRepo{Repository: base, failures: failures, calls: new(int)}
}

func (r flakyRepo) UpdateVersioned(ctx context.Context, chart *SeatingChart) error {
	*r.calls++
	if *r.calls <= r.failures {
		return errStaleVersion
	}
	return r.Repository.UpdateVersioned(ctx, chart)
}

func (r flakyRepo) Transaction(ctx context.Context, fn func(txRepo Repository, tx *gorm.DB) error) error {
	return r.Repository.Transaction(ctx, func(txRepo Repository, tx *gorm.DB) error {
		return fn(flakyRepo{Repository: txRepo, failures: r.failures, calls: r.calls}, tx)
	})
}

func seedChart(t *testing.T, repo Repository) *SeatingChart {
	t.Helper()
	chart := &SeatingChart{EventID: uuid.New(), Name: "Seed", SeatingStyle: StyleTableBased, IsActive: true}
	chart.SetSections([]Section{TableSection("s1", "Floor", []string{"t1"}, 2)})
	require.NoError(t, repo.Create(context.Background(), chart))
	return chart
}

func TestMutator_RetriesStaleVersion(t *testing.T) {
	db := testutil.OpenSQLite(t, &SeatingChart{})
	base := NewRepository(db)
	chart := seedChart(t, base)

	repo := newFlakyRepo(base, 2)
	mutator := NewMutator(repo, nil, nil, 5, logger.Discard())

	attempts := 0
	saved, err := mutator.Mutate(context.Background(), chart.ID, func(_ *gorm.DB, c *SeatingChart) error {
		attempts++
		c.Name = "Renamed"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "Renamed", saved.Name)
	assert.Equal(t, 2, saved.Version)
}

func TestMutator_GivesUpAfterMaxRetries(t *testing.T) {
	db := testutil.OpenSQLite(t, &SeatingChart{})
	base := NewRepository(db)
	chart := seedChart(t, base)

	mutator := NewMutator(newFlakyRepo(base, 10), nil, nil, 3, logger.Discard())
	_, err := mutator.Mutate(context.Background(), chart.ID, func(_ *gorm.DB, c *SeatingChart) error {
		c.Name = "never"
		return nil
	})
	require.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.Equal(t, 503, HTTPStatus(err))

	stored, err := base.GetByID(context.Background(), chart.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seed", stored.Name)
	assert.Equal(t, 1, stored.Version)
}

func TestMutator_NoChangesSkipsWrite(t *testing.T) {
	db := testutil.OpenSQLite(t, &SeatingChart{})
	repo := NewRepository(db)
	chart := seedChart(t, repo)

	mutator := NewMutator(repo, nil, nil, 1, logger.Discard())
	got, err := mutator.Mutate(context.Background(), chart.ID, func(_ *gorm.DB, c *SeatingChart) error {
		return ErrNoChanges
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Version)
}

func TestMutator_CallbackErrorRollsBack(t *testing.T) {
	db := testutil.OpenSQLite(t, &SeatingChart{})
	repo := NewRepository(db)
	chart := seedChart(t, repo)

	boom := errors.New("boom")
	mutator := NewMutator(repo, nil, nil, 3, logger.Discard())
	_, err := mutator.Mutate(context.Background(), chart.ID, func(_ *gorm.DB, c *SeatingChart) error {
		c.Name = "half-done"
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := repo.GetByID(context.Background(), chart.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seed", stored.Name)
}

func TestRepository_StaleVersionIsRejected(t *testing.T) {
	db := testutil.OpenSQLite(t, &SeatingChart{})
	repo := NewRepository(db)
	chart := seedChart(t, repo)

	first, err := repo.GetByID(context.Background(), chart.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(context.Background(), chart.ID)
	require.NoError(t, err)

	first.Name = "first"
	require.NoError(t, repo.UpdateVersioned(context.Background(), first))
	assert.Equal(t, 2, first.Version)

	second.Name = "second"
	assert.ErrorIs(t, repo.UpdateVersioned(context.Background(), second), errStaleVersion)
	assert.ErrorIs(t, repo.DeleteVersioned(context.Background(), chart.ID, 1), errStaleVersion)
}
