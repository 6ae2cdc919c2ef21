// Package shared holds the building blocks the forecast and inventory
// domains have in common.
package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity is embedded by every aggregate for its id and timestamps.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch records a modification.
func (e *BaseEntity) Touch() { e.UpdatedAt = time.Now() }
