package persistence

import (
	"context"

	appinv "github.com/preorder/backend/internal/application/inventory"
	"github.com/preorder/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope opens a gorm transaction per Execute and rolls it back
// when fn returns an error.
type GormTransactionScope struct {
	db *gorm.DB
}

var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

func (s *GormTransactionScope) Execute(ctx context.Context, fn func(appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos{tx})
	})
}

// txRepos builds repositories on the transaction handle.
type txRepos struct{ tx *gorm.DB }

func (r txRepos) ItemRepo() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r txRepos) TransactionRepo() inventory.TransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}
