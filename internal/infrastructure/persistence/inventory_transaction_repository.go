package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryTransactionRepository implements TransactionRepository using GORM
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Create appends a log entry
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.Transaction) error {
	return r.db.WithContext(ctx).Create(models.TransactionModelFromDomain(tx)).Error
}

// FindByItem returns one page of an item's log entries and the total entry count
func (r *GormInventoryTransactionRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).Where("item_id = ?", itemID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(transactionSortColumns.orderBy(filter.OrderBy, filter.OrderDir, "created_at"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.TransactionModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	txs := make([]inventory.Transaction, len(rows))
	for i := range rows {
		txs[i] = *rows[i].ToDomain()
	}
	return txs, total, nil
}

// Ensure GormInventoryTransactionRepository implements TransactionRepository
var _ inventory.TransactionRepository = (*GormInventoryTransactionRepository)(nil)
