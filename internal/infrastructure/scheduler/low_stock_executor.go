package scheduler

import (
	"context"
	"fmt"

	inventoryapp "github.com/preorder/backend/internal/application/inventory"
	"go.uber.org/zap"
)

// LowStockLister lists items at or below their threshold
type LowStockLister interface {
	LowStock(ctx context.Context) ([]inventoryapp.ItemResponse, error)
}

// LowStockExecutor runs JobKindLowStockScan: it logs one warning per item
// that needs restocking.
type LowStockExecutor struct {
	items  LowStockLister
	logger *zap.Logger
}

// NewLowStockExecutor creates a LowStockExecutor
func NewLowStockExecutor(items LowStockLister, logger *zap.Logger) *LowStockExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LowStockExecutor{items: items, logger: logger}
}

// Execute implements JobExecutor
func (e *LowStockExecutor) Execute(ctx context.Context, job *Job) error {
	if job.Kind != JobKindLowStockScan {
		return fmt.Errorf("%w: %s", ErrUnknownJobKind, job.Kind)
	}

	items, err := e.items.LowStock(ctx)
	if err != nil {
		return fmt.Errorf("list low stock items: %w", err)
	}

	for _, it := range items {
		e.logger.Warn("Item low on stock",
			zap.String("sku", it.SKU),
			zap.String("name", it.Name),
			zap.Int("stock_qty", it.StockQty),
			zap.Int("low_stock_threshold", it.LowStockThreshold),
		)
	}
	e.logger.Info("Low stock scan finished",
		zap.String("job_id", job.ID.String()),
		zap.Int("low_stock_items", len(items)),
	)
	return nil
}
