package seatingcharts

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"stepperslife/internal/events"
	"stepperslife/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

var (
	ErrChartNotFound = errors.New("seating chart not found")
	ErrSeatNotFound  = errors.New("seat not found in seating chart")
	// ErrSeatConflict is wrapped by *SeatConflictError.
	ErrSeatConflict       = errors.New("seat not available")
	ErrActiveReservations = errors.New("seating chart has active reservations")
	ErrInvalidLayout      = errors.New("invalid seating layout")
	ErrInvalidRequest     = errors.New("invalid request")
	// ErrConcurrentUpdate is returned once the write retries are exhausted.
	ErrConcurrentUpdate = errors.New("seating chart is being modified, try again")

	// ErrNoChanges lets a Mutate callback end the cycle without writing.
	ErrNoChanges = errors.New("no changes")
)

// SeatConflictError names the seat that blocked a hold or reservation.
type SeatConflictError struct {
	Seat   SeatLocation
	Reason string
}

func (e *SeatConflictError) Error() string {
	container := "row " + e.Seat.RowID
	if e.Seat.TableID != "" {
		container = "table " + e.Seat.TableID
	}
	label := e.Seat.SeatNumber
	if label == "" {
		label = e.Seat.SeatID
	}
	return fmt.Sprintf("seat %s at %s in section %s is not available: %s", label, container, e.Seat.SectionID, e.Reason)
}

func (e *SeatConflictError) Unwrap() error {
	return ErrSeatConflict
}

// LayoutError lists everything wrong with a submitted layout.
type LayoutError struct {
	Problems []string
}

func (e *LayoutError) Error() string {
	return ErrInvalidLayout.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *LayoutError) Unwrap() error {
	return ErrInvalidLayout
}

// ErrorKind groups domain errors for logs and HTTP mapping.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindForbidden      ErrorKind = "forbidden"
	KindConflict       ErrorKind = "conflict"
	KindInvariantGuard ErrorKind = "invariant_guard"
	KindValidation     ErrorKind = "validation"
	KindConcurrency    ErrorKind = "concurrency"
	KindInternal       ErrorKind = "internal"
)

func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrChartNotFound), errors.Is(err, ErrSeatNotFound), errors.Is(err, events.ErrEventNotFound):
		return KindNotFound
	case errors.Is(err, events.ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, events.ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrSeatConflict):
		return KindConflict
	case errors.Is(err, ErrActiveReservations):
		return KindInvariantGuard
	case errors.Is(err, ErrInvalidLayout), errors.Is(err, ErrInvalidRequest):
		return KindValidation
	case errors.Is(err, ErrConcurrentUpdate):
		return KindConcurrency
	default:
		return KindInternal
	}
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict, KindInvariantGuard:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindConcurrency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err in the standard envelope. Internal errors are not
// echoed to the client.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	kind := KindOf(err)

	var details interface{} = map[string]string{"kind": string(kind)}
	var layoutErr *LayoutError
	var conflict *SeatConflictError
	switch {
	case errors.As(err, &layoutErr):
		details = map[string]interface{}{"kind": kind, "problems": layoutErr.Problems}
	case errors.As(err, &conflict):
		details = map[string]interface{}{"kind": kind, "seat": conflict.Seat, "reason": conflict.Reason}
	}

	message := err.Error()
	if kind == KindInternal {
		message = "Internal server error"
		_ = c.Error(err)
	}
	response.RespondJSON(c, "error", status, message, nil, details)
}
