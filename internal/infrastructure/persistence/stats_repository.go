package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/monitoring"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStatsRepository implements monitoring.StatsRepository
type GormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a stats repository
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// CountProfiles returns the number of user profiles
func (r *GormStatsRepository) CountProfiles(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.ProfileModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return n, nil
}

// CountActiveUsers returns the number of distinct users with activity since the given time
func (r *GormStatsRepository) CountActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.UserActivityModel{}).
		Where("created_at >= ?", since).
		Distinct("user_id").
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return n, nil
}

// OrdersSince returns the number and summed total of orders created since the given time
func (r *GormStatsRepository) OrdersSince(ctx context.Context, since time.Time) (int64, decimal.Decimal, error) {
	var row struct {
		Count   int64
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("created_at >= ?", since).
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	return row.Count, row.Revenue, nil
}

// PaymentStatusCounts groups orders created since the given time by payment status
func (r *GormStatsRepository) PaymentStatusCounts(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("COALESCE(payment_status, 'unknown') AS status, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("COALESCE(payment_status, 'unknown')").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group orders by payment status: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// LowStockProducts lists tracked products whose quantity is at or below the threshold
func (r *GormStatsRepository) LowStockProducts(ctx context.Context, threshold, limit int) ([]monitoring.LowStockProduct, error) {
	var rows []models.StockItemModel
	err := r.db.WithContext(ctx).
		Where("track_quantity = ? AND quantity <= ?", true, threshold).
		Order("quantity ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	out := make([]monitoring.LowStockProduct, 0, len(rows))
	for _, m := range rows {
		out = append(out, monitoring.LowStockProduct{ID: m.ID, Name: m.Name, Quantity: m.Quantity})
	}
	return out, nil
}

var _ monitoring.StatsRepository = (*GormStatsRepository)(nil)
