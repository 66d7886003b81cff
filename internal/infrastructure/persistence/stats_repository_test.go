package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormStatsRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(
		&models.OrderModel{}, &models.ProfileModel{}, &models.UserActivityModel{}, &models.StockItemModel{},
	))
	repo := NewGormStatsRepository(db)

	now := time.Now().UTC()
	since := now.Add(-24 * time.Hour)
	old := now.Add(-48 * time.Hour)

	require.NoError(t, db.Create(&[]models.ProfileModel{
		{ID: "u1", Role: strPtr("admin")}, {ID: "u2"}, {ID: "u3"},
	}).Error)
	require.NoError(t, db.Create(&[]models.UserActivityModel{
		{ID: "a1", UserID: "u1", ActionType: "view", CreatedAt: now},
		{ID: "a2", UserID: "u1", ActionType: "cart", CreatedAt: now},
		{ID: "a3", UserID: "u2", ActionType: "view", CreatedAt: now},
		{ID: "a4", UserID: "u3", ActionType: "view", CreatedAt: old},
	}).Error)
	require.NoError(t, db.Create(&[]models.OrderModel{
		{ID: "o1", UserID: "u1", TotalAmount: 5000, PaymentStatus: strPtr("paid"), CreatedAt: now},
		{ID: "o2", UserID: "u2", TotalAmount: 2500.5, PaymentStatus: strPtr("pending"), CreatedAt: now},
		{ID: "o3", UserID: "u2", TotalAmount: 100, CreatedAt: now},
		{ID: "o4", UserID: "u3", TotalAmount: 9999, PaymentStatus: strPtr("paid"), CreatedAt: old},
	}).Error)
	require.NoError(t, db.Create(&[]models.StockItemModel{
		{ID: "p1", Name: "Savon", Quantity: 2, TrackQuantity: true},
		{ID: "p2", Name: "Riz", Quantity: 50, TrackQuantity: true},
		{ID: "p3", Name: "Service", Quantity: 0, TrackQuantity: false},
		{ID: "p4", Name: "Huile", Quantity: 8, TrackQuantity: true},
	}).Error)

	total, err := repo.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	active, err := repo.CountActiveUsers(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(2), active)

	count, revenue, err := repo.OrdersSince(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, "7600.5", revenue.String())

	statuses, err := repo.PaymentStatusCounts(ctx, since)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"paid": 1, "pending": 1, "unknown": 1}, statuses)

	low, err := repo.LowStockProducts(ctx, 10, 5)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "p1", low[0].ID)
	assert.Equal(t, "p4", low[1].ID)
}

func TestGormProfileRepository_RoleOf(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.ProfileModel{}))
	require.NoError(t, db.Create(&[]models.ProfileModel{{ID: "u1", Role: strPtr("admin")}, {ID: "u2"}}).Error)
	repo := NewGormProfileRepository(db)

	role, err := repo.RoleOf(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin", role)

	role, err = repo.RoleOf(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, role)

	_, err = repo.RoleOf(ctx, "u9")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
