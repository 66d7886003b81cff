package order

import "context"

// Repository reads orders and stamps their payment state.
//
// Stamp never moves an order out of a terminal payment state (paid,
// refunded); in that case it returns applied=false and no error. Stamping an
// order that does not exist also returns applied=false.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByProviderReference(ctx context.Context, reference string) (*Order, error)
	Stamp(ctx context.Context, id string, stamp PaymentStamp) (applied bool, err error)
}
