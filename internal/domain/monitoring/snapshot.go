// Package monitoring defines the operations snapshot shown on the admin
// dashboard and logged by the periodic monitor.
package monitoring

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockProduct is a tracked product at or below the stock threshold
type LowStockProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Snapshot is a point-in-time view of store activity
type Snapshot struct {
	TakenAt         time.Time         `json:"taken_at"`
	TotalUsers      int64             `json:"total_users"`
	ActiveUsers24h  int64             `json:"active_users_24h"`
	OrdersToday     int64             `json:"orders_today"`
	RevenueToday    decimal.Decimal   `json:"revenue_today"`
	PaymentStatuses map[string]int64  `json:"payment_statuses"`
	LowStock        []LowStockProduct `json:"low_stock"`
	ConversionRate  float64           `json:"conversion_rate"`
}

// ComputeConversionRate sets the share of active users who ordered today, in percent
func (s *Snapshot) ComputeConversionRate() {
	if s.ActiveUsers24h == 0 {
		s.ConversionRate = 0
		return
	}
	rate := decimal.NewFromInt(s.OrdersToday).
		Div(decimal.NewFromInt(s.ActiveUsers24h)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	s.ConversionRate = rate.InexactFloat64()
}

// StatsRepository runs the aggregate queries behind a snapshot
type StatsRepository interface {
	CountProfiles(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context, since time.Time) (int64, error)
	OrdersSince(ctx context.Context, since time.Time) (count int64, revenue decimal.Decimal, err error)
	PaymentStatusCounts(ctx context.Context, since time.Time) (map[string]int64, error)
	LowStockProducts(ctx context.Context, threshold, limit int) ([]LowStockProduct, error)
}
