package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.Item, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter inventory.ItemFilter) ([]inventory.Item, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) FindLowStock(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockTransactionRepository is a mock implementation of inventory.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *inventory.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]inventory.Transaction, int64, error) {
	args := m.Called(ctx, itemID, filter)
	return args.Get(0).([]inventory.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockBundleRepository is a mock implementation of inventory.BundleRepository
type MockBundleRepository struct {
	mock.Mock
}

func (m *MockBundleRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Bundle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Bundle), args.Error(1)
}

func (m *MockBundleRepository) FindByCode(ctx context.Context, code string) (*inventory.Bundle, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Bundle), args.Error(1)
}

func (m *MockBundleRepository) FindAll(ctx context.Context, includeHidden bool) ([]inventory.Bundle, error) {
	args := m.Called(ctx, includeHidden)
	return args.Get(0).([]inventory.Bundle), args.Error(1)
}

func (m *MockBundleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockBundleRepository) Create(ctx context.Context, bundle *inventory.Bundle) error {
	return m.Called(ctx, bundle).Error(0)
}

func (m *MockBundleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
