package reservations

import (
	"fmt"

	"gorm.io/gorm"
)

// activeSeatIndex allows one RESERVED entry per seat. Released entries are
// kept as history and fall outside the index.
const activeSeatIndex = `CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_seat_reservation
ON seat_reservations (seating_chart_id, section_id, seat_id)
WHERE status = 'RESERVED'`

// EnsureIndexes creates the indexes AutoMigrate cannot express. It must run
// after seat_reservations exists.
func EnsureIndexes(db *gorm.DB) error {
	if err := db.Exec(activeSeatIndex).Error; err != nil {
		return fmt.Errorf("failed to create active seat reservation index: %w", err)
	}
	return nil
}
