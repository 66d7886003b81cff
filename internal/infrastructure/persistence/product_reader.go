package persistence

import (
	"context"
	"fmt"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductReader implements catalog.ProductReader
type GormProductReader struct {
	db *gorm.DB
}

// NewGormProductReader creates a product reader
func NewGormProductReader(db *gorm.DB) *GormProductReader {
	return &GormProductReader{db: db}
}

// Exists reports whether a product row with the id exists
func (r *GormProductReader) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StockItemModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up product: %w", err)
	}
	return count > 0, nil
}

var _ catalog.ProductReader = (*GormProductReader)(nil)
