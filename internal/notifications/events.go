package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a seating lifecycle change. It doubles as the routing key
// on RabbitMQ and as a header on Kafka.
type EventType string

const (
	EventChartCreated  EventType = "seating.chart.created"
	EventChartUpdated  EventType = "seating.chart.updated"
	EventChartDeleted  EventType = "seating.chart.deleted"
	EventSeatsHeld     EventType = "seating.seats.held"
	EventHoldsReleased EventType = "seating.holds.released"
	EventHoldsExpired  EventType = "seating.holds.expired"
	EventSeatsReserved EventType = "seating.seats.reserved"
	EventSeatsReleased EventType = "seating.seats.released"
)

// SeatRef identifies one seat in a chart
type SeatRef struct {
	SectionID  string `json:"section_id"`
	RowID      string `json:"row_id,omitempty"`
	TableID    string `json:"table_id,omitempty"`
	SeatID     string `json:"seat_id"`
	SeatNumber string `json:"seat_number"`
}

// SeatingEvent is the message published after a successful seating change
type SeatingEvent struct {
	ID         string     `json:"id"`
	Type       EventType  `json:"type"`
	ChartID    string     `json:"chart_id"`
	EventID    string     `json:"event_id"`
	SessionID  string     `json:"session_id,omitempty"`
	TicketID   string     `json:"ticket_id,omitempty"`
	OrderID    string     `json:"order_id,omitempty"`
	Seats      []SeatRef  `json:"seats,omitempty"`
	Count      int        `json:"count"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewSeatingEvent stamps an id and time on a new event
func NewSeatingEvent(eventType EventType, chartID, eventID uuid.UUID) SeatingEvent {
	return SeatingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		ChartID:    chartID.String(),
		EventID:    eventID.String(),
		OccurredAt: time.Now().UTC(),
	}
}

func (e SeatingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey keeps every change to one chart on one partition, in order.
func (e SeatingEvent) PartitionKey() string {
	return e.ChartID
}
