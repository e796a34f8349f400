package reservations

import "github.com/google/uuid"

type ReserveSeatsResponse struct {
	ChartID       uuid.UUID         `json:"chart_id"`
	TicketID      string            `json:"ticket_id"`
	OrderID       string            `json:"order_id"`
	Reservations  []SeatReservation `json:"reservations"`
	ReservedSeats int               `json:"reserved_seats"`
}

type ReleaseSeatsResponse struct {
	TicketID string            `json:"ticket_id"`
	Released int               `json:"released"`
	Seats    []SeatReservation `json:"seats"`
}
