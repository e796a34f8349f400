package database

import (
	"stepperslife/internal/events"
	"stepperslife/internal/reservations"
	"stepperslife/internal/seatingcharts"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&events.Event{},
		&seatingcharts.SeatingChart{},
		&reservations.SeatReservation{},
	)
	if err != nil {
		return err
	}
	return MigrateConstraints(db)
}
