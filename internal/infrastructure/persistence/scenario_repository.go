package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/forecast"
	"github.com/preorder/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormScenarioRepository implements ScenarioRepository using GORM
type GormScenarioRepository struct {
	db *gorm.DB
}

// NewGormScenarioRepository creates a new GormScenarioRepository
func NewGormScenarioRepository(db *gorm.DB) *GormScenarioRepository {
	return &GormScenarioRepository{db: db}
}

// Create inserts a scenario
func (r *GormScenarioRepository) Create(ctx context.Context, scenario *forecast.Scenario) error {
	model := models.ScenarioModelFromDomain(scenario)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// FindByBatch returns the scenarios of a batch, newest first
func (r *GormScenarioRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]forecast.Scenario, error) {
	var rows []models.ScenarioModel
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	scenarios := make([]forecast.Scenario, len(rows))
	for i := range rows {
		scenarios[i] = *rows[i].ToDomain()
	}
	return scenarios, nil
}

// Ensure GormScenarioRepository implements ScenarioRepository
var _ forecast.ScenarioRepository = (*GormScenarioRepository)(nil)
