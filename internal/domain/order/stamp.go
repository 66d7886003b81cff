package order

import "time"

// PaymentStamp is a set of payment columns written onto an order.
// Empty fields are left untouched.
type PaymentStamp struct {
	PaymentStatus     PaymentStatus
	Status            string
	Provider          string
	Method            string
	ProviderReference string
	PaidAt            *time.Time
}

// PendingStamp marks an order as awaiting payment with the given provider
func PendingStamp(provider, reference string) PaymentStamp {
	return PaymentStamp{
		PaymentStatus:     PaymentStatusPending,
		Provider:          provider,
		Method:            MethodCard,
		ProviderReference: reference,
	}
}

// PaidStamp marks an order as paid and moves it to processing
func PaidStamp(provider string, paidAt time.Time) PaymentStamp {
	return PaymentStamp{
		PaymentStatus: PaymentStatusPaid,
		Status:        StatusProcessing,
		Provider:      provider,
		Method:        MethodCard,
		PaidAt:        &paidAt,
	}
}

// FailedStamp marks an order's payment as failed.
// An empty provider leaves the provider and method columns untouched.
func FailedStamp(provider string) PaymentStamp {
	stamp := PaymentStamp{PaymentStatus: PaymentStatusFailed}
	if provider != "" {
		stamp.Provider = provider
		stamp.Method = MethodCard
	}
	return stamp
}
