package forecast

import (
	"context"

	"github.com/google/uuid"
)

// BatchRepository persists batches. Lists are ordered newest first.
type BatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	FindAll(ctx context.Context) ([]Batch, error)
	Save(ctx context.Context, batch *Batch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScenarioRepository persists scenarios. Scenarios are append only.
type ScenarioRepository interface {
	Create(ctx context.Context, scenario *Scenario) error
	FindByBatch(ctx context.Context, batchID uuid.UUID) ([]Scenario, error)
}
