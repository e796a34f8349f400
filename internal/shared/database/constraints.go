package database

import (
	"stepperslife/internal/reservations"

	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints and indexes AutoMigrate cannot
// declare from struct tags.
func MigrateConstraints(db *gorm.DB) error {
	// One RESERVED ledger entry per seat, enforced by the database
	if err := reservations.EnsureIndexes(db); err != nil {
		return err
	}

	// Chart lookup by event for the hold endpoints
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seating_charts_event_active
		ON seating_charts (event_id, is_active, created_at);
	`).Error
	if err != nil {
		return err
	}

	// Ledger history per ticket
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seat_reservations_ticket_status
		ON seat_reservations (ticket_id, status);
	`).Error
}
