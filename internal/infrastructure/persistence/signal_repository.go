package persistence

import (
	"context"
	"fmt"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const productEntity = "product"

// GormSignalRepository implements catalog.SignalRepository on user_activities
// and product_similar_products
type GormSignalRepository struct {
	db *gorm.DB
}

// NewGormSignalRepository creates a signal repository
func NewGormSignalRepository(db *gorm.DB) *GormSignalRepository {
	return &GormSignalRepository{db: db}
}

// ProductEvents returns the user's tracked product interactions, newest first
func (r *GormSignalRepository) ProductEvents(ctx context.Context, userID string, limit int) ([]catalog.ActivityEvent, error) {
	actions := make([]string, 0, len(catalog.TrackedActions()))
	for _, a := range catalog.TrackedActions() {
		actions = append(actions, string(a))
	}

	var rows []models.UserActivityModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entity_type = ? AND action_type IN ?", userID, productEntity, actions).
		Where("entity_id IS NOT NULL AND entity_id <> ''").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product activity: %w", err)
	}

	out := make([]catalog.ActivityEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.ActivityEvent{
			ProductID: deref(row.EntityID),
			Action:    catalog.Action(row.ActionType),
			At:        row.CreatedAt,
		})
	}
	return out, nil
}

// TopViewed counts product views over all recorded activity
func (r *GormSignalRepository) TopViewed(ctx context.Context, limit int) ([]catalog.ViewCount, error) {
	var rows []struct {
		ProductID string
		Views     int
	}
	err := r.db.WithContext(ctx).
		Model(&models.UserActivityModel{}).
		Select("entity_id AS product_id, COUNT(*) AS views").
		Where("entity_type = ? AND action_type = ?", productEntity, string(catalog.ActionView)).
		Where("entity_id IS NOT NULL AND entity_id <> ''").
		Group("entity_id").
		Order("views DESC").
		Order("entity_id").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count product views: %w", err)
	}

	out := make([]catalog.ViewCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.ViewCount{ProductID: row.ProductID, Views: row.Views})
	}
	return out, nil
}

// SimilarTo returns the similarity pairs seeded by productIDs, best first
func (r *GormSignalRepository) SimilarTo(ctx context.Context, productIDs []string, limit int) ([]catalog.Similarity, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var rows []models.ProductSimilarityModel
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("similarity DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load product similarities: %w", err)
	}

	out := make([]catalog.Similarity, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.Similarity{
			ProductID:        row.ProductID,
			SimilarProductID: row.SimilarProductID,
			CommonUsers:      row.CommonUsers,
			Score:            row.Similarity,
		})
	}
	return out, nil
}

var _ catalog.SignalRepository = (*GormSignalRepository)(nil)
