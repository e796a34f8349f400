package seatingcharts

import (
	"time"
)

// SeatKey identifies a seat for the reservation ledger.
type SeatKey struct {
	SectionID string
	SeatID    string
}

func KeyOf(loc SeatLocation) SeatKey {
	return SeatKey{SectionID: loc.SectionID, SeatID: loc.SeatID}
}

// DeriveSeatState merges one seat's flags with whether the ledger holds a
// RESERVED entry for it.
func DeriveSeatState(seat *Seat, now time.Time, confirmedInLedger bool) SeatState {
	switch {
	case seat.Status == SeatUnavailable || seat.Type == SeatBlocked:
		return StateBlocked
	case confirmedInLedger:
		return StateConfirmed
	case seat.HeldAt(now):
		return StateHeld
	case seat.HoldExpiredAt(now):
		return StateAvailable
	case seat.Status == SeatReserved:
		// Reserved with no session and no ledger entry: trust the flag.
		return StateConfirmed
	default:
		return StateAvailable
	}
}

// BuildAvailability walks the chart and classifies every seat.
func BuildAvailability(chart *SeatingChart, confirmed map[SeatKey]bool, now time.Time) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ChartID:       chart.ID,
		EventID:       chart.EventID,
		TotalSeats:    chart.TotalSeats,
		ReservedSeats: chart.ReservedSeats,
		Counts: map[SeatState]int{
			StateAvailable: 0,
			StateHeld:      0,
			StateConfirmed: 0,
			StateBlocked:   0,
		},
		Seats:       make([]SeatAvailability, 0, chart.TotalSeats),
		GeneratedAt: now,
	}

	WalkSeats(chart.SectionList(), func(loc SeatLocation, seat *Seat) bool {
		state := DeriveSeatState(seat, now, confirmed[KeyOf(loc)])
		entry := SeatAvailability{SeatLocation: loc, Type: seat.Type, State: state}
		if state == StateHeld {
			until := time.UnixMilli(seat.SessionExpiry).UTC()
			entry.HeldUntil = &until
		}
		resp.Counts[state]++
		resp.Seats = append(resp.Seats, entry)
		return true
	})
	return resp
}

// ConfirmedSet indexes the ledger's active seats by key.
func ConfirmedSet(active []SeatLocation) map[SeatKey]bool {
	confirmed := make(map[SeatKey]bool, len(active))
	for _, loc := range active {
		confirmed[KeyOf(loc)] = true
	}
	return confirmed
}

// CarrySeatState makes a replacement tree keep the booking state of the tree
// it replaces. Booking flags sent by the client are ignored: a seat reserved
// or held in prev stays so, any other seat starts available, and every seat
// with an active ledger entry is confirmed. Marking a seat UNAVAILABLE drops
// its hold but never a sale.
func CarrySeatState(prev, next []Section, confirmed map[SeatKey]bool) {
	before := make(map[SeatKey]Seat)
	WalkSeats(prev, func(loc SeatLocation, seat *Seat) bool {
		before[KeyOf(loc)] = *seat
		return true
	})

	WalkSeats(next, func(loc SeatLocation, seat *Seat) bool {
		key := KeyOf(loc)
		blocked := seat.Status == SeatUnavailable

		switch old, ok := before[key]; {
		case confirmed[key]:
			seat.Confirm()
		case blocked:
			seat.SessionID = ""
			seat.SessionExpiry = 0
		case ok && old.Status == SeatReserved:
			seat.Status = old.Status
			seat.SessionID = old.SessionID
			seat.SessionExpiry = old.SessionExpiry
		default:
			seat.Free()
		}
		return true
	})
}
