package persistence

import (
	"context"
	"fmt"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements payment.Repository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a payment repository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// CreateIfAbsent inserts the payment unless one already exists for the same
// provider reference. On Postgres concurrent callers are serialized by a
// transaction-scoped advisory lock on the reference.
func (r *GormPaymentRepository) CreateIfAbsent(ctx context.Context, p *payment.Payment) (bool, error) {
	if p.ProviderReference == "" {
		return false, fmt.Errorf("payment: provider reference is required")
	}
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", p.ProviderReference).Error; err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.PaymentModel{}).
			Where("provider = ? AND stripe_payment_intent_id = ?", string(p.Provider), p.ProviderReference).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		model := models.PaymentModel{
			ID:                    p.ID,
			UserID:                p.UserID,
			OrderID:               p.OrderID,
			Provider:              string(p.Provider),
			Status:                string(p.Status),
			Amount:                p.Amount.InexactFloat64(),
			Currency:              p.Currency,
			StripePaymentIntentID: p.ProviderReference,
			CreatedAt:             p.CreatedAt,
		}
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to record payment: %w", err)
	}
	return created, nil
}

// UpdateStatus transitions the payments with the given reference
func (r *GormPaymentRepository) UpdateStatus(ctx context.Context, provider payment.Provider, reference string, status payment.Status) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("provider = ? AND stripe_payment_intent_id = ?", string(provider), reference).
		Where("status <> ?", string(payment.StatusSucceeded)).
		Update("status", string(status))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

var _ payment.Repository = (*GormPaymentRepository)(nil)
