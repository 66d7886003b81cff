package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/order"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// Order columns that older deployments of the storefront schema lack
const (
	colStatus          = "status"
	colPaymentProvider = "payment_provider"
	colPaymentMethod   = "payment_method"
	colIntentID        = "stripe_payment_intent_id"
	colPaidAt          = "paid_at"
	colUpdatedAt       = "updated_at"
)

var (
	requiredOrderColumns = []string{"id", "user_id", "total_amount", "payment_status"}
	optionalOrderColumns = []string{colStatus, colPaymentProvider, colPaymentMethod, colIntentID, colPaidAt}
	terminalStatuses     = []string{string(order.PaymentStatusPaid), string(order.PaymentStatusRefunded)}
)

// ErrStatusUnsupported is returned by SetStatus when the orders table has no
// status column
var ErrStatusUnsupported = shared.NewDomainError("SERVICE_UNAVAILABLE", "Order status is not supported by this database")

// ErrMissingOrderColumn is returned at startup when the orders table lacks a required column
var ErrMissingOrderColumn = errors.New("persistence: orders table is missing a required column")

// GormOrderRepository implements order.Repository.
//
// The set of writable columns is detected once at construction; Stamp writes
// only the columns that exist, in a single UPDATE.
type GormOrderRepository struct {
	db      *gorm.DB
	columns map[string]bool
}

// NewGormOrderRepository inspects the orders table and returns a repository
// bound to its capabilities
func NewGormOrderRepository(db *gorm.DB) (*GormOrderRepository, error) {
	m := db.Migrator()
	if !m.HasTable(&models.OrderModel{}) {
		return nil, fmt.Errorf("persistence: orders table not found")
	}
	for _, col := range requiredOrderColumns {
		if !m.HasColumn(&models.OrderModel{}, col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingOrderColumn, col)
		}
	}
	columns := make(map[string]bool, len(optionalOrderColumns))
	for _, col := range optionalOrderColumns {
		columns[col] = m.HasColumn(&models.OrderModel{}, col)
	}
	// updated_at is maintained by the dashboard and is not mapped on the model
	columns[colUpdatedAt] = m.HasColumn(&models.OrderModel{}, colUpdatedAt)
	return &GormOrderRepository{db: db, columns: columns}, nil
}

// HasColumn reports whether an optional column was found at startup
func (r *GormOrderRepository) HasColumn(name string) bool {
	return r.columns[name]
}

// FindByID loads an order by id
func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if model.ID == "" {
		return nil, shared.ErrNotFound
	}
	return toOrder(&model), nil
}

// FindByProviderReference loads the order stamped with a stripe payment intent id
func (r *GormOrderRepository) FindByProviderReference(ctx context.Context, reference string) (*order.Order, error) {
	if reference == "" || !r.columns[colIntentID] {
		return nil, shared.ErrNotFound
	}
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where(colIntentID+" = ?", reference).Limit(1).Find(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if model.ID == "" {
		return nil, shared.ErrNotFound
	}
	return toOrder(&model), nil
}

// Stamp writes the payment stamp onto the order unless it is already in a
// terminal payment state
func (r *GormOrderRepository) Stamp(ctx context.Context, id string, stamp order.PaymentStamp) (bool, error) {
	updates := r.stampColumns(stamp)
	if len(updates) == 0 {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Where("(payment_status IS NULL OR payment_status NOT IN ?)", terminalStatuses).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to stamp order: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetStatus writes the fulfillment status of an order, and updated_at when
// the table has it
func (r *GormOrderRepository) SetStatus(ctx context.Context, id, status string, at time.Time) error {
	if !r.columns[colStatus] {
		return ErrStatusUnsupported
	}
	updates := map[string]any{colStatus: status}
	if r.columns[colUpdatedAt] {
		updates[colUpdatedAt] = at
	}

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound.WithMessage("Order not found")
	}
	return nil
}

func (r *GormOrderRepository) stampColumns(stamp order.PaymentStamp) map[string]any {
	updates := make(map[string]any)
	if stamp.PaymentStatus != "" {
		updates["payment_status"] = string(stamp.PaymentStatus)
	}
	optional := map[string]any{}
	if stamp.Status != "" {
		optional[colStatus] = stamp.Status
	}
	if stamp.Provider != "" {
		optional[colPaymentProvider] = stamp.Provider
	}
	if stamp.Method != "" {
		optional[colPaymentMethod] = stamp.Method
	}
	if stamp.ProviderReference != "" {
		optional[colIntentID] = stamp.ProviderReference
	}
	if stamp.PaidAt != nil {
		optional[colPaidAt] = *stamp.PaidAt
	}
	for col, v := range optional {
		if r.columns[col] {
			updates[col] = v
		}
	}
	return updates
}

func toOrder(m *models.OrderModel) *order.Order {
	return &order.Order{
		ID:                m.ID,
		UserID:            m.UserID,
		OrderNumber:       deref(m.OrderNumber),
		TotalAmount:       m.TotalAmount,
		Currency:          deref(m.Currency),
		Status:            deref(m.Status),
		PaymentStatus:     order.PaymentStatus(deref(m.PaymentStatus)),
		PaymentProvider:   deref(m.PaymentProvider),
		PaymentMethod:     deref(m.PaymentMethod),
		ProviderReference: deref(m.StripePaymentIntentID),
		CustomerEmail:     deref(m.CustomerEmail),
		CustomerName:      deref(m.CustomerName),
		CustomerPhone:     deref(m.CustomerPhone),
		PaidAt:            m.PaidAt,
		CreatedAt:         m.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var (
	_ order.Repository   = (*GormOrderRepository)(nil)
	_ order.StatusWriter = (*GormOrderRepository)(nil)
)
