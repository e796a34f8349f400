package reservations

import (
	"time"

	"stepperslife/internal/seatingcharts"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatReservation is one ledger entry tying a seat to a purchased ticket.
// Entries are never deleted; releasing one only flips its status.
type SeatReservation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	SeatingChartID uuid.UUID  `gorm:"type:uuid;not null;index:idx_seat_reservations_chart_status" json:"seating_chart_id"`
	TicketID       string     `gorm:"size:100;index;not null" json:"ticket_id"`
	OrderID        string     `gorm:"size:100;index;not null" json:"order_id"`
	SectionID      string     `gorm:"size:100;not null" json:"section_id"`
	RowID          string     `gorm:"size:100" json:"row_id,omitempty"`
	TableID        string     `gorm:"size:100" json:"table_id,omitempty"`
	SeatID         string     `gorm:"size:100;not null" json:"seat_id"`
	SeatNumber     string     `gorm:"size:20;not null" json:"seat_number"`
	Status         Status     `gorm:"type:varchar(20);check:status IN ('RESERVED', 'RELEASED');default:'RESERVED';not null;index:idx_seat_reservations_chart_status" json:"status"`
	ReservedAt     time.Time  `gorm:"not null" json:"reserved_at"`
	ReleasedAt     *time.Time `json:"released_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName sets the table name for SeatReservation
func (SeatReservation) TableName() string {
	return "seat_reservations"
}

func (r *SeatReservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusReserved
	}
	return nil
}

// Location returns where the reserved seat sits in its chart
func (r *SeatReservation) Location() seatingcharts.SeatLocation {
	return seatingcharts.SeatLocation{
		SectionID:  r.SectionID,
		RowID:      r.RowID,
		TableID:    r.TableID,
		SeatID:     r.SeatID,
		SeatNumber: r.SeatNumber,
	}
}

func (r *SeatReservation) Key() seatingcharts.SeatKey {
	return seatingcharts.SeatKey{SectionID: r.SectionID, SeatID: r.SeatID}
}
