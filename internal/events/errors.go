package events

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	// ErrUnauthorized means no authenticated caller was supplied.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden means the caller is authenticated but does not own the event.
	ErrForbidden = errors.New("caller does not own this event")
)
