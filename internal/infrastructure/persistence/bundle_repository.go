package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBundleRepository implements BundleRepository using GORM
type GormBundleRepository struct {
	db *gorm.DB
}

// NewGormBundleRepository creates a new GormBundleRepository
func NewGormBundleRepository(db *gorm.DB) *GormBundleRepository {
	return &GormBundleRepository{db: db}
}

func (r *GormBundleRepository) withComponents(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Components").Preload("Components.Item")
}

// FindByID finds a bundle by its ID with components and their items
func (r *GormBundleRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Bundle, error) {
	var model models.BundleModel
	if err := r.withComponents(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds a bundle by its code with components and their items
func (r *GormBundleRepository) FindByCode(ctx context.Context, code string) (*inventory.Bundle, error) {
	var model models.BundleModel
	if err := r.withComponents(ctx).First(&model, "code = ?", code).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns bundles ordered by code. Hidden bundles are skipped unless includeHidden.
func (r *GormBundleRepository) FindAll(ctx context.Context, includeHidden bool) ([]inventory.Bundle, error) {
	query := r.withComponents(ctx)
	if !includeHidden {
		query = query.Where("is_hidden = ?", false)
	}

	var rows []models.BundleModel
	if err := query.Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	bundles := make([]inventory.Bundle, len(rows))
	for i := range rows {
		bundles[i] = *rows[i].ToDomain()
	}
	return bundles, nil
}

// ExistsByCode checks if a bundle with the given code exists
func (r *GormBundleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.BundleModel{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a bundle and its components
func (r *GormBundleRepository) Create(ctx context.Context, bundle *inventory.Bundle) error {
	model := models.BundleModelFromDomain(bundle)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// Delete removes a bundle and its components
func (r *GormBundleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bundle_id = ?", id).Delete(&models.BundleComponentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.BundleModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormBundleRepository implements BundleRepository
var _ inventory.BundleRepository = (*GormBundleRepository)(nil)
