package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/forecast"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*forecast.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns every batch, newest first
func (r *GormBatchRepository) FindAll(ctx context.Context) ([]forecast.Batch, error) {
	var rows []models.BatchModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	batches := make([]forecast.Batch, len(rows))
	for i := range rows {
		batches[i] = *rows[i].ToDomain()
	}
	return batches, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *forecast.Batch) error {
	model := models.BatchModelFromDomain(batch)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a batch together with its scenarios
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("batch_id = ?", id).Delete(&models.ScenarioModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.BatchModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormBatchRepository implements BatchRepository
var _ forecast.BatchRepository = (*GormBatchRepository)(nil)
