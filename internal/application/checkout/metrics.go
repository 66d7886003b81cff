package checkout

import (
	"context"
	"errors"
)

// Outcomes recorded for checkouts and webhook deliveries
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
)

// Metrics counts checkout attempts and webhook deliveries per provider
type Metrics interface {
	RecordCheckout(ctx context.Context, provider, outcome string)
	RecordWebhook(ctx context.Context, provider, outcome string)
}

type noopMetrics struct{}

func (noopMetrics) RecordCheckout(context.Context, string, string) {}
func (noopMetrics) RecordWebhook(context.Context, string, string)  {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

// outcomeOf classifies a service error: client-side failures are rejections
func outcomeOf(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var e *Error
	if errors.As(err, &e) && e.Status < 500 {
		return OutcomeRejected
	}
	return OutcomeError
}
