package holds

import (
	"fmt"
	"time"

	"stepperslife/internal/seatingcharts"
)

func selectorFor(req SeatRequest) seatingcharts.SeatSelector {
	return seatingcharts.SeatSelector{
		SectionID:  req.SectionID,
		TableID:    req.TableID,
		RowID:      req.RowID,
		SeatNumber: req.SeatNumber,
	}
}

// placeHolds holds every seat named by reqs for sessionID until expiresAt.
// It stops at the first seat that is not free, leaving sections partly
// changed, so callers work on a copy and discard it on error.
func placeHolds(sections []seatingcharts.Section, sessionID string, reqs []SeatRequest, expiresAt, now time.Time) ([]seatingcharts.SeatLocation, error) {
	var held []seatingcharts.SeatLocation
	done := make(map[seatingcharts.SeatKey]bool)

	for _, req := range reqs {
		sel := selectorFor(req)
		matches := seatingcharts.FindSeats(sections, sel)
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", seatingcharts.ErrSeatNotFound, sel)
		}
		for _, m := range matches {
			key := seatingcharts.KeyOf(m.Location)
			if done[key] {
				continue
			}
			if err := checkHoldable(m, now); err != nil {
				return nil, err
			}
			m.Seat.Hold(sessionID, expiresAt)
			done[key] = true
			held = append(held, m.Location)
		}
	}
	return held, nil
}

// checkHoldable accepts an available seat or one whose hold has lapsed.
// A live hold blocks everyone, including the session that owns it.
func checkHoldable(m seatingcharts.SeatMatch, now time.Time) error {
	seat := m.Seat
	conflict := func(reason string) error {
		return &seatingcharts.SeatConflictError{Seat: m.Location, Reason: reason}
	}
	switch {
	case seat.Type == seatingcharts.SeatBlocked || seat.Status == seatingcharts.SeatUnavailable:
		return conflict("seat is blocked")
	case seat.Status == seatingcharts.SeatAvailable:
		return nil
	case seat.HoldExpiredAt(now):
		return nil
	case seat.HasSession():
		return conflict("held until " + time.UnixMilli(seat.SessionExpiry).UTC().Format(time.RFC3339))
	default:
		return conflict("already reserved")
	}
}

// releaseHolds frees the seats sessionID holds. With no reqs every seat of
// the session is freed; otherwise only the named ones, and seats held by
// another session are skipped.
func releaseHolds(sections []seatingcharts.Section, sessionID string, reqs []SeatRequest) []seatingcharts.SeatLocation {
	var released []seatingcharts.SeatLocation
	free := func(loc seatingcharts.SeatLocation, seat *seatingcharts.Seat) {
		if seat.SessionID != sessionID {
			return
		}
		seat.Free()
		released = append(released, loc)
	}

	if len(reqs) == 0 {
		seatingcharts.WalkSeats(sections, func(loc seatingcharts.SeatLocation, seat *seatingcharts.Seat) bool {
			free(loc, seat)
			return true
		})
		return released
	}

	for _, req := range reqs {
		for _, m := range seatingcharts.FindSeats(sections, selectorFor(req)) {
			free(m.Location, m.Seat)
		}
	}
	return released
}

// expireHolds frees every seat whose hold lapsed before now.
func expireHolds(sections []seatingcharts.Section, now time.Time) []seatingcharts.SeatLocation {
	var expired []seatingcharts.SeatLocation
	seatingcharts.WalkSeats(sections, func(loc seatingcharts.SeatLocation, seat *seatingcharts.Seat) bool {
		if seat.HoldExpiredAt(now) {
			seat.Free()
			expired = append(expired, loc)
		}
		return true
	})
	return expired
}
