package seatingcharts

import (
	"time"

	"github.com/google/uuid"
)

type SeatingChartResponse struct {
	ID                 uuid.UUID    `json:"id"`
	EventID            uuid.UUID    `json:"event_id"`
	Name               string       `json:"name"`
	SeatingStyle       SeatingStyle `json:"seating_style"`
	VenueImageID       string       `json:"venue_image_id,omitempty"`
	VenueImageURL      string       `json:"venue_image_url,omitempty"`
	VenueImageScale    float64      `json:"venue_image_scale"`
	VenueImageRotation float64      `json:"venue_image_rotation"`
	Sections           []Section    `json:"sections"`
	TotalSeats         int          `json:"total_seats"`
	ReservedSeats      int          `json:"reserved_seats"`
	IsActive           bool         `json:"is_active"`
	Version            int          `json:"version"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func ToResponse(chart *SeatingChart) *SeatingChartResponse {
	sections := chart.SectionList()
	if sections == nil {
		sections = []Section{}
	}
	return &SeatingChartResponse{
		ID:                 chart.ID,
		EventID:            chart.EventID,
		Name:               chart.Name,
		SeatingStyle:       chart.SeatingStyle,
		VenueImageID:       chart.VenueImageID,
		VenueImageURL:      chart.VenueImageURL,
		VenueImageScale:    chart.VenueImageScale,
		VenueImageRotation: chart.VenueImageRotation,
		Sections:           sections,
		TotalSeats:         chart.TotalSeats,
		ReservedSeats:      chart.ReservedSeats,
		IsActive:           chart.IsActive,
		Version:            chart.Version,
		CreatedAt:          chart.CreatedAt,
		UpdatedAt:          chart.UpdatedAt,
	}
}

// SeatState is the purchasability of a seat after merging the in-chart
// flags with the reservation ledger.
type SeatState string

const (
	StateAvailable SeatState = "AVAILABLE"
	StateHeld      SeatState = "HELD"
	StateConfirmed SeatState = "CONFIRMED"
	StateBlocked   SeatState = "BLOCKED"
)

type SeatAvailability struct {
	SeatLocation
	Type      SeatType   `json:"type"`
	State     SeatState  `json:"state"`
	HeldUntil *time.Time `json:"heldUntil,omitempty"`
}

type AvailabilityResponse struct {
	ChartID       uuid.UUID          `json:"chart_id"`
	EventID       uuid.UUID          `json:"event_id"`
	TotalSeats    int                `json:"total_seats"`
	ReservedSeats int                `json:"reserved_seats"`
	Counts        map[SeatState]int  `json:"counts"`
	Seats         []SeatAvailability `json:"seats"`
	GeneratedAt   time.Time          `json:"generated_at"`
}
