package persistence

import (
	"context"
	"fmt"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List returns the products matching q. Products whose is_active is not
// true are excluded unless q.IncludeInactive is set.
func (r *GormProductRepository) List(ctx context.Context, q catalog.ProductQuery) ([]catalog.Product, error) {
	tx := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if !q.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	if len(q.IDs) > 0 {
		tx = tx.Where("id IN ?", q.IDs)
	}
	if len(q.CategoryIDs) > 0 {
		tx = tx.Where("category_id IN ?", q.CategoryIDs)
	}
	if len(q.Brands) > 0 {
		tx = tx.Where("brand IN ?", q.Brands)
	}
	switch q.Order {
	case catalog.OrderByRating:
		tx = tx.Order("rating DESC NULLS LAST").Order("id")
	case catalog.OrderByPopularity:
		tx = tx.Order("reviews_count DESC NULLS LAST").Order("rating DESC NULLS LAST").Order("id")
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []models.ProductModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	out := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		out = append(out, toProduct(&rows[i]))
	}
	return out, nil
}

func toProduct(m *models.ProductModel) catalog.Product {
	p := catalog.Product{
		ID:             m.ID,
		Name:           m.Name,
		Slug:           deref(m.Slug),
		Description:    deref(m.Description),
		Price:          m.Price,
		CompareAtPrice: m.CompareAtPrice,
		SKU:            deref(m.SKU),
		TrackQuantity:  true,
		CategoryID:     deref(m.CategoryID),
		Brand:          deref(m.Brand),
		MainImage:      deref(m.MainImage),
		Images:         m.Images,
		Specifications: m.Specifications,
		Tags:           m.Tags,
		IsActive:       true,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Quantity != nil {
		p.Quantity = *m.Quantity
	}
	if m.TrackQuantity != nil {
		p.TrackQuantity = *m.TrackQuantity
	}
	if m.Rating != nil {
		p.Rating = *m.Rating
	}
	if m.ReviewsCount != nil {
		p.ReviewsCount = *m.ReviewsCount
	}
	if m.IsFeatured != nil {
		p.IsFeatured = *m.IsFeatured
	}
	if m.IsActive != nil {
		p.IsActive = *m.IsActive
	}
	return p
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
