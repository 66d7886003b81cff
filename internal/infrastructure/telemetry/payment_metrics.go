package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/monitoring"
)

// ErrMeterNil is returned when a metrics type is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// PaymentMetrics counts checkout attempts and webhook deliveries per
// provider and outcome.
type PaymentMetrics struct {
	checkouts metric.Int64Counter
	webhooks  metric.Int64Counter
}

// NewPaymentMetrics creates the payment counters on meter.
func NewPaymentMetrics(meter metric.Meter) (*PaymentMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	in := &instruments{meter: meter}
	pm := &PaymentMetrics{
		checkouts: in.counter("checkout_attempts_total",
			"Checkout sessions started, by provider and outcome", "{attempt}"),
		webhooks: in.counter("webhook_deliveries_total",
			"Provider webhook deliveries, by provider and outcome", "{delivery}"),
	}
	if in.err != nil {
		return nil, in.err
	}
	return pm, nil
}

// RecordCheckout counts one checkout attempt
func (m *PaymentMetrics) RecordCheckout(ctx context.Context, provider, outcome string) {
	m.checkouts.Add(ctx, 1, metric.WithAttributes(AttrProvider.String(provider), AttrOutcome.String(outcome)))
}

// RecordWebhook counts one webhook delivery
func (m *PaymentMetrics) RecordWebhook(ctx context.Context, provider, outcome string) {
	m.webhooks.Add(ctx, 1, metric.WithAttributes(AttrProvider.String(provider), AttrOutcome.String(outcome)))
}

// StoreMetrics exports the figures of each monitoring snapshot as gauges.
type StoreMetrics struct {
	logger          *zap.Logger
	totalUsers      metric.Int64Gauge
	activeUsers     metric.Int64Gauge
	ordersToday     metric.Int64Gauge
	revenueToday    metric.Float64Gauge
	paymentStatuses metric.Int64Gauge
	lowStock        metric.Int64Gauge
	conversionRate  metric.Float64Gauge
}

// NewStoreMetrics creates the store gauges on meter.
func NewStoreMetrics(meter metric.Meter, logger *zap.Logger) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	in := &instruments{meter: meter}
	sm := &StoreMetrics{
		logger:          logger,
		totalUsers:      in.gauge("store_users_total", "Registered user profiles", "{user}"),
		activeUsers:     in.gauge("store_active_users_24h", "Users active in the last 24 hours", "{user}"),
		ordersToday:     in.gauge("store_orders_today", "Orders created since start of day", "{order}"),
		revenueToday:    in.floatGauge("store_revenue_today", "Order revenue since start of day", "XAF"),
		paymentStatuses: in.gauge("store_orders_by_payment_status", "Orders created today, by payment status", "{order}"),
		lowStock:        in.gauge("store_low_stock_products", "Tracked products at or below the stock threshold", "{product}"),
		conversionRate:  in.floatGauge("store_conversion_rate", "Share of active users who ordered today", "%"),
	}
	if in.err != nil {
		return nil, in.err
	}
	return sm, nil
}

// RecordSnapshot records every figure of snap
func (m *StoreMetrics) RecordSnapshot(ctx context.Context, snap monitoring.Snapshot) {
	m.totalUsers.Record(ctx, snap.TotalUsers)
	m.activeUsers.Record(ctx, snap.ActiveUsers24h)
	m.ordersToday.Record(ctx, snap.OrdersToday)
	m.revenueToday.Record(ctx, snap.RevenueToday.InexactFloat64())
	m.lowStock.Record(ctx, int64(len(snap.LowStock)))
	m.conversionRate.Record(ctx, snap.ConversionRate)
	for status, count := range snap.PaymentStatuses {
		m.paymentStatuses.Record(ctx, count, metric.WithAttributes(AttrPaymentStatus.String(status)))
	}

	m.logger.Debug("Recorded store metrics", zap.Time("taken_at", snap.TakenAt))
}
