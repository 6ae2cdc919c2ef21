package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newItemService() (*ItemService, *MockItemRepository, *MockTransactionRepository) {
	itemRepo := new(MockItemRepository)
	txRepo := new(MockTransactionRepository)
	svc := NewItemService(itemRepo, txRepo, NewNoOpTransactionScope(itemRepo, txRepo))
	return svc, itemRepo, txRepo
}

func newTestItem(t *testing.T, sku string, stock int) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(sku, "Item "+sku, "badge", stock, 5)
	require.NoError(t, err)
	return item
}

func TestItemService_Create(t *testing.T) {
	t.Run("stores new item", func(t *testing.T) {
		svc, itemRepo, _ := newItemService()
		itemRepo.On("ExistsBySKU", mock.Anything, "BADGE-1").Return(false, nil)
		itemRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Item")).Return(nil)

		resp, err := svc.Create(context.Background(), CreateItemRequest{
			SKU: " BADGE-1 ", Name: "Badge", Category: "badge", StockQty: 3, LowStockThreshold: 5,
		})

		require.NoError(t, err)
		assert.Equal(t, "BADGE-1", resp.SKU)
		assert.True(t, resp.IsLowStock)
		itemRepo.AssertExpectations(t)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		svc, itemRepo, _ := newItemService()
		itemRepo.On("ExistsBySKU", mock.Anything, "BADGE-1").Return(true, nil)

		_, err := svc.Create(context.Background(), CreateItemRequest{SKU: "BADGE-1", Name: "Badge"})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unique violation on save", func(t *testing.T) {
		svc, itemRepo, _ := newItemService()
		itemRepo.On("ExistsBySKU", mock.Anything, "BADGE-1").Return(false, nil)
		itemRepo.On("Save", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := svc.Create(context.Background(), CreateItemRequest{SKU: "BADGE-1", Name: "Badge"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("invalid item", func(t *testing.T) {
		svc, itemRepo, _ := newItemService()
		_, err := svc.Create(context.Background(), CreateItemRequest{SKU: "X", Name: " "})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		itemRepo.AssertNotCalled(t, "ExistsBySKU", mock.Anything, mock.Anything)
	})
}

func TestItemService_List_AppliesDefaults(t *testing.T) {
	svc, itemRepo, _ := newItemService()
	itemRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f inventory.ItemFilter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderDir == "desc" && f.Category == "standee" && f.Search == "aix"
	})).Return([]inventory.Item{*newTestItem(t, "A", 1)}, int64(1), nil)

	items, total, err := svc.List(context.Background(), ItemListFilter{Category: "standee", Search: "aix"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
	itemRepo.AssertExpectations(t)
}

func TestItemService_Update(t *testing.T) {
	svc, itemRepo, _ := newItemService()
	item := newTestItem(t, "A", 10)
	itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	itemRepo.On("Save", mock.Anything, item).Return(nil)

	resp, err := svc.Update(context.Background(), item.ID, UpdateItemRequest{Name: "Renamed", Category: "acrylic", LowStockThreshold: 20})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, 20, resp.LowStockThreshold)
	assert.True(t, resp.IsLowStock)
}

func TestItemService_GetAndDelete_NotFound(t *testing.T) {
	svc, itemRepo, _ := newItemService()
	id := uuid.New()
	itemRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)
	itemRepo.On("Delete", mock.Anything, id).Return(shared.ErrNotFound)

	_, err := svc.GetByID(context.Background(), id)
	assert.Equal(t, ErrItemNotFound, err)
	assert.Equal(t, ErrItemNotFound, svc.Delete(context.Background(), id))
}

func TestItemService_AdjustStock(t *testing.T) {
	t.Run("applies delta and logs movement", func(t *testing.T) {
		svc, itemRepo, txRepo := newItemService()
		item := newTestItem(t, "A", 10)
		itemRepo.On("FindByIDForUpdate", mock.Anything, item.ID).Return(item, nil)
		itemRepo.On("Save", mock.Anything, item).Return(nil)
		txRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *inventory.Transaction) bool {
			return tx.DeltaQty == -4 && tx.StockBefore == 10 && tx.StockAfter == 6 && tx.ItemSKU == "A"
		})).Return(nil)

		resp, err := svc.AdjustStock(context.Background(), item.ID, AdjustStockRequest{DeltaQty: -4, Reason: "damaged"})

		require.NoError(t, err)
		assert.Equal(t, 6, resp.Item.StockQty)
		assert.Equal(t, "damaged", resp.Transaction.Reason)
		require.NotNil(t, resp.Transaction.ItemID)
		assert.Equal(t, item.ID, *resp.Transaction.ItemID)
		itemRepo.AssertExpectations(t)
		txRepo.AssertExpectations(t)
	})

	t.Run("rejects negative result", func(t *testing.T) {
		svc, itemRepo, txRepo := newItemService()
		item := newTestItem(t, "A", 2)
		itemRepo.On("FindByIDForUpdate", mock.Anything, item.ID).Return(item, nil)

		_, err := svc.AdjustStock(context.Background(), item.ID, AdjustStockRequest{DeltaQty: -3})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		itemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc, itemRepo, _ := newItemService()
		id := uuid.New()
		itemRepo.On("FindByIDForUpdate", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.AdjustStock(context.Background(), id, AdjustStockRequest{DeltaQty: 1})
		assert.Equal(t, ErrItemNotFound, err)
	})

	t.Run("log failure surfaces", func(t *testing.T) {
		svc, itemRepo, txRepo := newItemService()
		item := newTestItem(t, "A", 2)
		itemRepo.On("FindByIDForUpdate", mock.Anything, item.ID).Return(item, nil)
		itemRepo.On("Save", mock.Anything, item).Return(nil)
		txRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := svc.AdjustStock(context.Background(), item.ID, AdjustStockRequest{DeltaQty: 1})
		assert.EqualError(t, err, "disk full")
	})
}

func TestItemService_Transactions(t *testing.T) {
	svc, itemRepo, txRepo := newItemService()
	item := newTestItem(t, "A", 10)
	tx := inventory.NewTransaction(item, 2, "restock", 8)
	itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	txRepo.On("FindByItem", mock.Anything, item.ID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2 && f.PageSize == 20
	})).Return([]inventory.Transaction{*tx}, int64(21), nil)

	list, total, err := svc.Transactions(context.Background(), item.ID, TransactionListFilter{Page: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].StockAfter)
}

func TestItemService_LowStock(t *testing.T) {
	svc, itemRepo, _ := newItemService()
	itemRepo.On("FindLowStock", mock.Anything).Return([]inventory.Item{*newTestItem(t, "A", 0), *newTestItem(t, "B", 1)}, nil)

	items, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	n, err := svc.CountLowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
