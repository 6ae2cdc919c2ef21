package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/shared"
)

// BaseModel is the id and timestamp columns every table shares.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func baseFrom(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func (m BaseModel) entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

// AllModels returns one of each model, parents before children, as
// AutoMigrate needs them for sqlite databases.
func AllModels() []any {
	return []any{
		&BatchModel{},
		&ScenarioModel{},
		&ItemModel{},
		&BundleModel{},
		&BundleComponentModel{},
		&TransactionModel{},
	}
}
