package reservations

import (
	"context"
	"time"

	"stepperslife/internal/seatingcharts"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository reads and writes the ledger. Methods taking a tx join that
// transaction when it is non-nil.
type Repository interface {
	// ActiveSeats lists the seats of a chart with a RESERVED entry. It
	// satisfies seatingcharts.ReservationLedger.
	ActiveSeats(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) ([]seatingcharts.SeatLocation, error)
	ActiveByChart(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) ([]SeatReservation, error)
	ActiveByTicket(ctx context.Context, tx *gorm.DB, ticketID string) ([]SeatReservation, error)

	CreateBatch(ctx context.Context, tx *gorm.DB, rows []SeatReservation) error
	// MarkReleased flips the given RESERVED entries to RELEASED and returns
	// how many changed.
	MarkReleased(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, at time.Time) (int64, error)

	ListByTicket(ctx context.Context, ticketID string) ([]SeatReservation, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}

func (r *repository) ActiveSeats(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) ([]seatingcharts.SeatLocation, error) {
	rows, err := r.ActiveByChart(ctx, tx, chartID)
	if err != nil {
		return nil, err
	}
	out := make([]seatingcharts.SeatLocation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Location())
	}
	return out, nil
}

func (r *repository) ActiveByChart(ctx context.Context, tx *gorm.DB, chartID uuid.UUID) ([]SeatReservation, error) {
	var rows []SeatReservation
	err := r.conn(ctx, tx).
		Where("seating_chart_id = ? AND status = ?", chartID, StatusReserved).
		Order("reserved_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ActiveByTicket(ctx context.Context, tx *gorm.DB, ticketID string) ([]SeatReservation, error) {
	var rows []SeatReservation
	err := r.conn(ctx, tx).
		Where("ticket_id = ? AND status = ?", ticketID, StatusReserved).
		Order("reserved_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateBatch(ctx context.Context, tx *gorm.DB, rows []SeatReservation) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx, tx).Create(&rows).Error
}

func (r *repository) MarkReleased(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.conn(ctx, tx).
		Model(&SeatReservation{}).
		Where("id IN ? AND status = ?", ids, StatusReserved).
		Updates(map[string]interface{}{
			"status":      StatusReleased,
			"released_at": at,
			"updated_at":  at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ListByTicket(ctx context.Context, ticketID string) ([]SeatReservation, error) {
	var rows []SeatReservation
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("reserved_at ASC, section_id ASC, seat_id ASC").
		Find(&rows).Error
	return rows, err
}
