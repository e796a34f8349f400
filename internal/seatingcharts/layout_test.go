package seatingcharts

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountSeats_SumsRowsAndTables(t *testing.T) {
	tables := TableSection("s1", "Floor", []string{"t1", "t2"}, 4)
	rows := RowSection("s2", "Balcony", []string{"A", "B", "C"}, 10)

	assert.Equal(t, 0, CountSeats(nil))
	assert.Equal(t, 8, CountSeats([]Section{tables}))
	assert.Equal(t, 38, CountSeats([]Section{tables, rows}))

	mixed := tables
	mixed.Rows = rows.Rows
	assert.Equal(t, 38, CountSeats([]Section{mixed}))
}

func TestValidateLayout_AcceptsBuiltLayouts(t *testing.T) {
	sections := []Section{
		TableSection("s1", "Floor", []string{"t1"}, 4),
		RowSection("s2", "Balcony", []string{"A"}, 6),
	}
	assert.NoError(t, ValidateLayout(StyleMixed, sections))
	assert.NoError(t, ValidateLayout(StyleTableBased, sections[:1]))
}

func TestValidateLayout_Rejections(t *testing.T) {
	cases := map[string]func() (SeatingStyle, []Section){
		"unknown style": func() (SeatingStyle, []Section) {
			return "STADIUM", nil
		},
		"duplicate section": func() (SeatingStyle, []Section) {
			return StyleTableBased, []Section{
				TableSection("s1", "A", []string{"t1"}, 2),
				TableSection("s1", "B", []string{"t2"}, 2),
			}
		},
		"duplicate seat in section": func() (SeatingStyle, []Section) {
			s := TableSection("s1", "A", []string{"t1"}, 2)
			s.Tables[0].Seats[1].ID = s.Tables[0].Seats[0].ID
			return StyleTableBased, []Section{s}
		},
		"capacity mismatch": func() (SeatingStyle, []Section) {
			s := TableSection("s1", "A", []string{"t1"}, 4)
			s.Tables[0].Capacity = 6
			return StyleTableBased, []Section{s}
		},
		"rows in a table section": func() (SeatingStyle, []Section) {
			s := TableSection("s1", "A", []string{"t1"}, 2)
			s.Rows = RowSection("x", "x", []string{"A"}, 1).Rows
			return StyleTableBased, []Section{s}
		},
		"bad seat status": func() (SeatingStyle, []Section) {
			s := TableSection("s1", "A", []string{"t1"}, 2)
			s.Tables[0].Seats[0].Status = "SOLD"
			return StyleTableBased, []Section{s}
		},
		"session on available seat": func() (SeatingStyle, []Section) {
			s := TableSection("s1", "A", []string{"t1"}, 2)
			s.Tables[0].Seats[0].SessionID = "sess-1"
			return StyleTableBased, []Section{s}
		},
		"missing section name": func() (SeatingStyle, []Section) {
			s := TableSection("s1", "", []string{"t1"}, 2)
			return StyleTableBased, []Section{s}
		},
	}

	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			style, sections := build()
			err := ValidateLayout(style, sections)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLayout))
			var layoutErr *LayoutError
			require.ErrorAs(t, err, &layoutErr)
			assert.NotEmpty(t, layoutErr.Problems)
		})
	}
}

func TestValidateLayout_CapacityZeroSkipsCheck(t *testing.T) {
	s := TableSection("s1", "A", []string{"t1"}, 3)
	s.Tables[0].Capacity = 0
	assert.NoError(t, ValidateLayout(StyleTableBased, []Section{s}))
}

func TestNormalizeSections_FillsDefaults(t *testing.T) {
	sections := []Section{{
		ID: "s1", Name: "A", ContainerType: ContainerTables,
		Tables: []Table{{ID: "t9", Seats: []Seat{{ID: "x", Number: "1"}}}},
	}}
	NormalizeSections(sections)
	assert.Equal(t, SeatStandard, sections[0].Tables[0].Seats[0].Type)
	assert.Equal(t, SeatAvailable, sections[0].Tables[0].Seats[0].Status)
	assert.Equal(t, "t9", sections[0].Tables[0].Number)
}

func TestFindSeats(t *testing.T) {
	sections := []Section{
		TableSection("s1", "Floor", []string{"t1", "t2"}, 4),
		RowSection("s2", "Balcony", []string{"A"}, 4),
	}

	byTable := FindSeats(sections, SeatSelector{TableID: "t2", SeatNumber: "3"})
	require.Len(t, byTable, 1)
	assert.Equal(t, "t2-seat-3", byTable[0].Location.SeatID)
	assert.Equal(t, "s1", byTable[0].Location.SectionID)

	byRow := FindSeats(sections, SeatSelector{RowID: "s2-row-A", SeatNumber: "2"})
	require.Len(t, byRow, 1)
	assert.Equal(t, "A2", byRow[0].Location.SeatID)

	// Seat number "1" exists at both tables and in the row
	assert.Len(t, FindSeats(sections, SeatSelector{SeatNumber: "1"}), 3)
	assert.Empty(t, FindSeats(sections, SeatSelector{TableID: "t1"}))
	assert.Empty(t, FindSeats(sections, SeatSelector{TableID: "t3", SeatNumber: "1"}))

	// Matches point into the sections
	byTable[0].Seat.Status = SeatUnavailable
	assert.Equal(t, SeatUnavailable, sections[0].Tables[1].Seats[2].Status)
}

func TestCloneSections_IsDeep(t *testing.T) {
	orig := []Section{TableSection("s1", "Floor", []string{"t1"}, 2)}
	clone := CloneSections(orig)
	clone[0].Tables[0].Seats[0].Status = SeatReserved
	assert.Equal(t, SeatAvailable, orig[0].Tables[0].Seats[0].Status)
}

func TestSeatHoldWindow(t *testing.T) {
	held := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
	var seat Seat
	seat.Hold("sess-1", held.Add(15*time.Minute))

	assert.Equal(t, SeatReserved, seat.Status)
	assert.True(t, seat.HeldAt(held.Add(14*time.Minute+59*time.Second)))
	assert.True(t, seat.HeldAt(held.Add(15*time.Minute)))
	assert.False(t, seat.HeldAt(held.Add(15*time.Minute+time.Second)))
	assert.True(t, seat.HoldExpiredAt(held.Add(15*time.Minute+time.Second)))

	seat.Free()
	assert.Equal(t, SeatAvailable, seat.Status)
	assert.False(t, seat.HasSession())
	assert.Zero(t, seat.SessionExpiry)
}

func TestDeriveSeatState(t *testing.T) {
	now := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

	available := Seat{Status: SeatAvailable}
	assert.Equal(t, StateAvailable, DeriveSeatState(&available, now, false))
	assert.Equal(t, StateConfirmed, DeriveSeatState(&available, now, true))

	blocked := Seat{Status: SeatUnavailable}
	assert.Equal(t, StateBlocked, DeriveSeatState(&blocked, now, true))

	var held Seat
	held.Hold("s", now.Add(time.Minute))
	assert.Equal(t, StateHeld, DeriveSeatState(&held, now, false))

	var lapsed Seat
	lapsed.Hold("s", now.Add(-time.Minute))
	assert.Equal(t, StateAvailable, DeriveSeatState(&lapsed, now, false))

	var confirmed Seat
	confirmed.Confirm()
	assert.Equal(t, StateConfirmed, DeriveSeatState(&confirmed, now, false))
}

func TestCarrySeatState_KeepsBookingsAcrossReshape(t *testing.T) {
	expires := time.Date(2026, 5, 1, 20, 15, 0, 0, time.UTC)

	prev := []Section{TableSection("s1", "Floor", []string{"t1"}, 4)}
	seatIn := func(sections []Section, id string) *Seat {
		found := FindSeats(sections, SeatSelector{SeatID: id})
		require.Len(t, found, 1, id)
		return found[0].Seat
	}
	seatIn(prev, "t1-seat-1").Hold("sess-a", expires)
	seatIn(prev, "t1-seat-2").Confirm()
	seatIn(prev, "t1-seat-3").Status = SeatUnavailable

	next := []Section{TableSection("s1", "Floor", []string{"t1", "t2"}, 4)}
	seatIn(next, "t1-seat-4").Hold("forged", expires)
	seatIn(next, "t2-seat-1").Hold("forged", expires)
	seatIn(next, "t2-seat-1").Status = SeatUnavailable

	confirmed := map[SeatKey]bool{{SectionID: "s1", SeatID: "t1-seat-2"}: true}
	CarrySeatState(prev, next, confirmed)

	held := seatIn(next, "t1-seat-1")
	assert.Equal(t, SeatReserved, held.Status)
	assert.Equal(t, "sess-a", held.SessionID)
	assert.Equal(t, expires.UnixMilli(), held.SessionExpiry)

	sold := seatIn(next, "t1-seat-2")
	assert.Equal(t, SeatReserved, sold.Status)
	assert.False(t, sold.HasSession())

	assert.Equal(t, SeatAvailable, seatIn(next, "t1-seat-3").Status, "unblocked by the organizer")

	forged := seatIn(next, "t1-seat-4")
	assert.Equal(t, SeatAvailable, forged.Status)
	assert.False(t, forged.HasSession())

	blocked := seatIn(next, "t2-seat-1")
	assert.Equal(t, SeatUnavailable, blocked.Status)
	assert.False(t, blocked.HasSession())
}

func TestCarrySeatState_LedgerWinsOverBlocking(t *testing.T) {
	prev := []Section{TableSection("s1", "Floor", []string{"t1"}, 2)}
	next := []Section{TableSection("s1", "Floor", []string{"t1"}, 2)}
	found := FindSeats(next, SeatSelector{SeatID: "t1-seat-1"})
	require.Len(t, found, 1)
	found[0].Seat.Status = SeatUnavailable

	CarrySeatState(prev, next, map[SeatKey]bool{{SectionID: "s1", SeatID: "t1-seat-1"}: true})

	assert.Equal(t, SeatReserved, found[0].Seat.Status)
}
