package holds

import (
	"time"

	"stepperslife/internal/seatingcharts"

	"github.com/google/uuid"
)

type HoldResponse struct {
	ChartID   uuid.UUID                    `json:"chart_id"`
	EventID   uuid.UUID                    `json:"event_id"`
	SessionID string                       `json:"session_id"`
	ExpiresAt time.Time                    `json:"expires_at"`
	Seats     []seatingcharts.SeatLocation `json:"seats"`
}

type ReleaseResponse struct {
	EventID   uuid.UUID                    `json:"event_id"`
	SessionID string                       `json:"session_id"`
	Released  int                          `json:"released"`
	Seats     []seatingcharts.SeatLocation `json:"seats"`
}

type CleanupResponse struct {
	EventID      uuid.UUID `json:"event_id"`
	CleanedCount int       `json:"cleaned_count"`
}

// SweepResult summarizes one pass over every active chart.
type SweepResult struct {
	Charts  int `json:"charts"`
	Cleaned int `json:"cleaned"`
	Failed  int `json:"failed"`
}
