package inventory

import (
	"context"

	"github.com/preorder/backend/internal/domain/inventory"
)

// TransactionScope runs a stock adjustment atomically: the item update and
// its log entry commit together or not at all.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories are the repositories bound to one open transaction.
type TransactionalRepositories interface {
	ItemRepo() inventory.ItemRepository
	TransactionRepo() inventory.TransactionRepository
}

// NoOpTransactionScope hands fn the plain repositories with no transaction.
// Unit tests with in-memory mocks use it.
type NoOpTransactionScope struct {
	items inventory.ItemRepository
	log   inventory.TransactionRepository
}

func NewNoOpTransactionScope(items inventory.ItemRepository, log inventory.TransactionRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{items: items, log: log}
}

func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository               { return s.items }
func (s *NoOpTransactionScope) TransactionRepo() inventory.TransactionRepository { return s.log }
