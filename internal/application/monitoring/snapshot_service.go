// Package monitoring computes the store activity snapshot served to the admin
// dashboard and logged by the periodic monitor.
package monitoring

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/monitoring"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
)

const (
	defaultLowStockThreshold = 5
	defaultLowStockLimit     = 50
	activeWindow             = 24 * time.Hour
)

// SnapshotService aggregates store activity
type SnapshotService struct {
	stats     monitoring.StatsRepository
	events    shared.EventPublisher
	logger    *zap.Logger
	threshold int
	limit     int
	location  *time.Location
	recorder  SnapshotRecorder
	now       func() time.Time
}

// SnapshotRecorder exports snapshot figures, typically as gauges
type SnapshotRecorder interface {
	RecordSnapshot(ctx context.Context, snap monitoring.Snapshot)
}

// SnapshotServiceConfig contains configuration for SnapshotService
type SnapshotServiceConfig struct {
	// LowStockThreshold is the quantity at or below which a tracked product is low
	LowStockThreshold int
	// LowStockLimit caps the number of low-stock products returned
	LowStockLimit int
	// Location decides where "today" starts; nil means UTC
	Location *time.Location
	// Recorder receives every collected snapshot; optional
	Recorder SnapshotRecorder
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(stats monitoring.StatsRepository, events shared.EventPublisher, logger *zap.Logger, cfg SnapshotServiceConfig) *SnapshotService {
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = defaultLowStockThreshold
	}
	if cfg.LowStockLimit <= 0 {
		cfg.LowStockLimit = defaultLowStockLimit
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &SnapshotService{
		stats:     stats,
		events:    events,
		logger:    logger,
		threshold: cfg.LowStockThreshold,
		limit:     cfg.LowStockLimit,
		location:  cfg.Location,
		recorder:  cfg.Recorder,
		now:       time.Now,
	}
}

// TakeSnapshot runs every aggregate query. A failing query is logged and its
// figures are left at zero; the error is returned only when all queries fail.
func (s *SnapshotService) TakeSnapshot(ctx context.Context) (*monitoring.Snapshot, error) {
	now := s.now().In(s.location)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	snap := &monitoring.Snapshot{
		TakenAt:         now.UTC(),
		RevenueToday:    decimal.Zero,
		PaymentStatuses: map[string]int64{},
		LowStock:        []monitoring.LowStockProduct{},
	}

	var failures int
	var lastErr error
	fail := func(what string, err error) {
		failures++
		lastErr = err
		s.logger.Warn("Failed to compute snapshot figure", zap.String("figure", what), zap.Error(err))
	}

	if n, err := s.stats.CountProfiles(ctx); err == nil {
		snap.TotalUsers = n
	} else {
		fail("total_users", err)
	}

	if n, err := s.stats.CountActiveUsers(ctx, now.Add(-activeWindow)); err == nil {
		snap.ActiveUsers24h = n
	} else {
		fail("active_users_24h", err)
	}

	if count, revenue, err := s.stats.OrdersSince(ctx, startOfDay); err == nil {
		snap.OrdersToday = count
		snap.RevenueToday = revenue
	} else {
		fail("orders_today", err)
	}

	if counts, err := s.stats.PaymentStatusCounts(ctx, startOfDay); err == nil && counts != nil {
		snap.PaymentStatuses = counts
	} else if err != nil {
		fail("payment_statuses", err)
	}

	if products, err := s.stats.LowStockProducts(ctx, s.threshold, s.limit); err == nil && products != nil {
		snap.LowStock = products
	} else if err != nil {
		fail("low_stock", err)
	}

	if failures == 5 {
		return nil, lastErr
	}

	snap.ComputeConversionRate()
	return snap, nil
}

// Collect takes a snapshot, logs it and publishes a MonitoringSnapshot event
func (s *SnapshotService) Collect(ctx context.Context) error {
	snap, err := s.TakeSnapshot(ctx)
	if err != nil {
		return err
	}

	s.logger.Info("Store monitoring snapshot",
		zap.Int64("total_users", snap.TotalUsers),
		zap.Int64("active_users_24h", snap.ActiveUsers24h),
		zap.Int64("orders_today", snap.OrdersToday),
		zap.String("revenue_today", snap.RevenueToday.String()),
		zap.Any("payment_statuses", snap.PaymentStatuses),
		zap.Int("low_stock_products", len(snap.LowStock)),
		zap.Float64("conversion_rate", snap.ConversionRate),
	)

	if s.recorder != nil {
		s.recorder.RecordSnapshot(ctx, *snap)
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, monitoring.NewSnapshotTaken(*snap)); err != nil {
			s.logger.Warn("Failed to publish monitoring snapshot", zap.Error(err))
		}
	}
	return nil
}
