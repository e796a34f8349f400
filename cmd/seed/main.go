package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"stepperslife/internal/events"
	"stepperslife/internal/reservations"
	"stepperslife/internal/seatingcharts"
	"stepperslife/internal/shared/config"
	"stepperslife/internal/shared/database"
	"stepperslife/internal/shared/identity"
	"stepperslife/pkg/cache"
	"stepperslife/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// demoOrganizerID owns the seeded events. Tokens minted for this id with the
// ORGANIZER role can manage the demo charts.
var demoOrganizerID = uuid.MustParse("00000000-0000-4000-8000-000000000001")

type Seeder struct {
	db        *database.DB
	events    events.Service
	charts    seatingcharts.Service
	organizer identity.Actor
}

func main() {
	fmt.Println("🌱 Starting SteppersLife seating seeder...")

	_ = godotenv.Load()
	cfg := config.Load()
	appLogger := logger.New()

	db, err := database.InitDB(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := newSeeder(db, appLogger)

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

func newSeeder(db *database.DB, appLogger *logger.Logger) *Seeder {
	pg := db.GetPostgreSQL()
	eventService := events.NewService(events.NewRepository(pg), cache.NewNoop(), appLogger)

	chartRepo := seatingcharts.NewRepository(pg)
	mutator := seatingcharts.NewMutator(chartRepo, seatingcharts.NewNopLocker(), cache.NewNoop(), 1, appLogger)
	chartService := seatingcharts.NewService(chartRepo, mutator, eventService, reservations.NewRepository(pg), cache.NewNoop(), nil, appLogger)

	return &Seeder{
		db:        db,
		events:    eventService,
		charts:    chartService,
		organizer: identity.Actor{UserID: demoOrganizerID, Email: "organizer@stepperslife.test", Role: identity.RoleOrganizer},
	}
}

// CleanDatabase truncates the seating tables, ledger first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"seat_reservations",
		"seating_charts",
		"events",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds a table-seated gala and a row-seated showcase
func (s *Seeder) SeedAll(ctx context.Context) error {
	gala, err := s.seedEvent(ctx, "Chicago Steppers Gala", "Grand Ballroom", 30)
	if err != nil {
		return err
	}
	tables := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		tables = append(tables, fmt.Sprintf("table-%d", i))
	}
	if err := s.seedChart(ctx, gala, "Ballroom Tables", seatingcharts.StyleTableBased, []seatingcharts.Section{
		seatingcharts.TableSection("vip", "VIP Tables", tables[:4], 8),
		seatingcharts.TableSection("main", "Main Floor", tables[4:], 10),
	}); err != nil {
		return err
	}

	showcase, err := s.seedEvent(ctx, "Steppers Showcase", "Lakeside Theater", 45)
	if err != nil {
		return err
	}
	if err := s.seedChart(ctx, showcase, "Theater Rows", seatingcharts.StyleRowBased, []seatingcharts.Section{
		seatingcharts.RowSection("orchestra", "Orchestra", []string{"A", "B", "C", "D"}, 12),
		seatingcharts.RowSection("balcony", "Balcony", []string{"E", "F"}, 16),
	}); err != nil {
		return err
	}

	// Clear cached charts so the API reads fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}
	return nil
}

func (s *Seeder) seedEvent(ctx context.Context, name, venue string, daysOut int) (*events.Event, error) {
	event, err := s.events.CreateEvent(ctx, s.organizer, events.CreateEventRequest{
		Name:     name,
		Venue:    venue,
		StartsAt: time.Now().AddDate(0, 0, daysOut).Truncate(time.Hour),
		Status:   string(events.EventStatusPublished),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event %s: %w", name, err)
	}
	fmt.Printf("    ✅ Created event: %s (%s)\n", event.Name, event.ID)
	return event, nil
}

func (s *Seeder) seedChart(ctx context.Context, event *events.Event, name string,
	style seatingcharts.SeatingStyle, sections []seatingcharts.Section) error {
	chart, err := s.charts.CreateSeatingChart(ctx, s.organizer, seatingcharts.CreateSeatingChartRequest{
		EventID:      event.ID.String(),
		Name:         name,
		SeatingStyle: style,
		Sections:     sections,
	})
	if err != nil {
		return fmt.Errorf("failed to create chart %s: %w", name, err)
	}
	fmt.Printf("    🪑 Created chart: %s with %d seats (%s)\n", name, chart.TotalSeats, chart.ID)
	return nil
}
