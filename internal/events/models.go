package events

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is the slice of the platform's event record the seating service needs:
// enough to resolve who owns a chart.
type Event struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey"`
	OrganizerID uuid.UUID   `json:"organizer_id" gorm:"type:uuid;not null;index"`
	Name        string      `json:"name" gorm:"not null;size:255"`
	Venue       string      `json:"venue" gorm:"size:255"`
	StartsAt    time.Time   `json:"starts_at" gorm:"not null"`
	Status      EventStatus `json:"status" gorm:"type:varchar(20);default:'draft'"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = EventStatusDraft
	}
	return nil
}

type CreateEventRequest struct {
	Name     string    `json:"name" binding:"required,min=3,max=255"`
	Venue    string    `json:"venue" binding:"max=255"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	Status   string    `json:"status" binding:"omitempty,oneof=draft published cancelled completed"`
}
