package persistence

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestPayment(ref string) *payment.Payment {
	return &payment.Payment{
		UserID:            "u1",
		OrderID:           "o1",
		Provider:          payment.ProviderStripe,
		Status:            payment.StatusPending,
		Amount:            decimal.NewFromInt(5000),
		Currency:          "xaf",
		ProviderReference: ref,
	}
}

func TestGormPaymentRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts once per reference", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, db.AutoMigrate(&models.PaymentModel{}))
		repo := NewGormPaymentRepository(db)

		created, err := repo.CreateIfAbsent(ctx, newTestPayment("pi_1"))
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repo.CreateIfAbsent(ctx, newTestPayment("pi_1"))
		require.NoError(t, err)
		assert.False(t, created)

		var count int64
		require.NoError(t, db.Model(&models.PaymentModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("concurrent callers produce one row", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, db.AutoMigrate(&models.PaymentModel{}))
		repo := NewGormPaymentRepository(db)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.CreateIfAbsent(ctx, newTestPayment("pi_race"))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		var count int64
		require.NoError(t, db.Model(&models.PaymentModel{}).Where("stripe_payment_intent_id = ?", "pi_race").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("requires reference", func(t *testing.T) {
		repo := NewGormPaymentRepository(setupTestDB(t))
		_, err := repo.CreateIfAbsent(ctx, newTestPayment(""))
		assert.Error(t, err)
	})

	t.Run("takes advisory lock on postgres", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer sqlDB.Close()

		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
			WithArgs("pi_pg").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "payments"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		created, err := NewGormPaymentRepository(db).CreateIfAbsent(ctx, newTestPayment("pi_pg"))
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.PaymentModel{}))
	repo := NewGormPaymentRepository(db)

	_, err := repo.CreateIfAbsent(ctx, newTestPayment("pi_1"))
	require.NoError(t, err)

	n, err := repo.UpdateStatus(ctx, payment.ProviderStripe, "pi_1", payment.StatusSucceeded)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.UpdateStatus(ctx, payment.ProviderStripe, "pi_1", payment.StatusFailed)
	require.NoError(t, err)
	assert.Zero(t, n, "succeeded payment must not be moved back")

	var m models.PaymentModel
	require.NoError(t, db.First(&m, "stripe_payment_intent_id = ?", "pi_1").Error)
	assert.Equal(t, "succeeded", m.Status)
}
