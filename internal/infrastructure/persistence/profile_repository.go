package persistence

import (
	"context"
	"fmt"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProfileRepository implements identity.ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a profile repository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// RoleOf returns the role stored on the user's profile
func (r *GormProfileRepository) RoleOf(ctx context.Context, userID string) (string, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Select("id", "role").Where("id = ?", userID).Limit(1).Find(&model).Error; err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}
	if model.ID == "" {
		return "", shared.ErrNotFound
	}
	return deref(model.Role), nil
}

var _ identity.ProfileRepository = (*GormProfileRepository)(nil)
