package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/delivery"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements delivery.Repository
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a delivery repository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// UpsertAssignment inserts or replaces the assignment of an order
func (r *GormDeliveryRepository) UpsertAssignment(ctx context.Context, a delivery.Assignment) error {
	model := models.DeliveryAssignmentModel{
		OrderID:    a.OrderID,
		DriverID:   a.DriverID,
		Status:     string(a.Status),
		AssignedAt: a.AssignedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"driver_id", "status", "assigned_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert delivery assignment: %w", err)
	}
	return nil
}

// ListAssignments returns the most recent assignments first
func (r *GormDeliveryRepository) ListAssignments(ctx context.Context, limit int) ([]delivery.Assignment, error) {
	var rows []models.DeliveryAssignmentModel
	if err := r.db.WithContext(ctx).Order("assigned_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list delivery assignments: %w", err)
	}
	out := make([]delivery.Assignment, 0, len(rows))
	for _, m := range rows {
		out = append(out, delivery.Assignment{
			OrderID:    m.OrderID,
			DriverID:   m.DriverID,
			Status:     delivery.AssignmentStatus(m.Status),
			AssignedAt: m.AssignedAt,
		})
	}
	return out, nil
}

// LatestLocation returns the driver's most recently captured position
func (r *GormDeliveryRepository) LatestLocation(ctx context.Context, driverID string) (*delivery.Location, error) {
	var m models.DriverLocationModel
	err := r.db.WithContext(ctx).Where("driver_id = ?", driverID).Order("captured_at DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load driver location: %w", err)
	}
	return &delivery.Location{
		DriverID:   m.DriverID,
		Lat:        m.Lat,
		Lng:        m.Lng,
		CapturedAt: m.CapturedAt,
	}, nil
}

var _ delivery.Repository = (*GormDeliveryRepository)(nil)
