package seatingcharts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errStaleVersion means the row changed since it was read.
var errStaleVersion = errors.New("seating chart version changed")

type Repository interface {
	Create(ctx context.Context, chart *SeatingChart) error
	GetByID(ctx context.Context, id uuid.UUID) (*SeatingChart, error)
	// GetByEventID returns the oldest active chart of the event.
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*SeatingChart, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)

	// UpdateVersioned writes every mutable column of chart if the stored
	// version still equals chart.Version, then bumps chart.Version.
	UpdateVersioned(ctx context.Context, chart *SeatingChart) error
	// DeleteVersioned removes the chart if its version is unchanged.
	DeleteVersioned(ctx context.Context, id uuid.UUID, version int) error

	// Transaction runs fn with a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(txRepo Repository, tx *gorm.DB) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, chart *SeatingChart) error {
	return r.db.WithContext(ctx).Create(chart).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SeatingChart, error) {
	var chart SeatingChart
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&chart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChartNotFound
		}
		return nil, err
	}
	return &chart, nil
}

func (r *repository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*SeatingChart, error) {
	var chart SeatingChart
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND is_active = ?", eventID, true).
		Order("created_at ASC").
		First(&chart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChartNotFound
		}
		return nil, err
	}
	return &chart, nil
}

func (r *repository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&SeatingChart{}).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) UpdateVersioned(ctx context.Context, chart *SeatingChart) error {
	expected := chart.Version
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&SeatingChart{}).
		Where("id = ? AND version = ?", chart.ID, expected).
		Updates(map[string]interface{}{
			"name":                 chart.Name,
			"seating_style":        chart.SeatingStyle,
			"venue_image_id":       chart.VenueImageID,
			"venue_image_url":      chart.VenueImageURL,
			"venue_image_scale":    chart.VenueImageScale,
			"venue_image_rotation": chart.VenueImageRotation,
			"sections":             chart.Sections,
			"total_seats":          chart.TotalSeats,
			"reserved_seats":       chart.ReservedSeats,
			"is_active":            chart.IsActive,
			"version":              expected + 1,
			"updated_at":           now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStaleVersion
	}

	chart.Version = expected + 1
	chart.UpdatedAt = now
	return nil
}

func (r *repository) DeleteVersioned(ctx context.Context, id uuid.UUID, version int) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", id, version).
		Delete(&SeatingChart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStaleVersion
	}
	return nil
}

func (r *repository) Transaction(ctx context.Context, fn func(txRepo Repository, tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx}, tx)
	})
}
