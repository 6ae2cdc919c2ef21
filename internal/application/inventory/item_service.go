package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrItemNotFound is returned when a referenced item does not exist.
var ErrItemNotFound = shared.NewDomainError("NOT_FOUND", "Item not found")

// ItemService handles items and manual stock adjustments
type ItemService struct {
	itemRepo        inventory.ItemRepository
	transactionRepo inventory.TransactionRepository
	txScope         TransactionScope
	businessMetrics *telemetry.BusinessMetrics
}

// NewItemService creates a new ItemService. Stock adjustments run inside txScope.
func NewItemService(
	itemRepo inventory.ItemRepository,
	transactionRepo inventory.TransactionRepository,
	txScope TransactionScope,
) *ItemService {
	return &ItemService{
		itemRepo:        itemRepo,
		transactionRepo: transactionRepo,
		txScope:         txScope,
	}
}

// SetBusinessMetrics attaches business metrics.
func (s *ItemService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create stores a new item. SKUs are unique.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewItem(req.SKU, req.Name, req.Category, req.StockQty, req.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	exists, err := s.itemRepo.ExistsBySKU(ctx, item.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this SKU already exists")
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this SKU already exists")
		}
		return nil, err
	}

	logger.L(ctx).Info("Item created", zap.String("item_id", item.ID.String()), zap.String("sku", item.SKU))
	resp := ToItemResponse(item)
	return &resp, nil
}

// List returns a page of items
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	f := inventory.ItemFilter{Filter: shared.DefaultFilter(), Category: filter.Category}
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	f.OrderBy = filter.OrderBy
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}

	items, total, err := s.itemRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return ToItemResponses(items), total, nil
}

// GetByID returns one item
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.findItem(ctx, s.itemRepo, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Update changes name, category and low stock threshold
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.findItem(ctx, s.itemRepo, id)
	if err != nil {
		return nil, err
	}
	if err := item.Update(req.Name, req.Category, req.LowStockThreshold); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Delete removes an item. Its bundle links go with it; its stock movements
// stay, detached from the item.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	logger.L(ctx).Info("Item deleted", zap.String("item_id", id.String()))
	return nil
}

// LowStock returns items at or below their threshold
func (s *ItemService) LowStock(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// CountLowStock reports the number of low stock items; it feeds the low stock gauge.
func (s *ItemService) CountLowStock(ctx context.Context) (int64, error) {
	items, err := s.itemRepo.FindLowStock(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

// AdjustStock applies a signed stock change and logs it in one transaction.
func (s *ItemService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*AdjustStockResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "item", "adjust_stock",
		attribute.String(telemetry.SpanAttrItemID, id.String()),
		attribute.Int(telemetry.SpanAttrQuantity, req.DeltaQty))
	defer span.End()

	var (
		item *inventory.Item
		tx   *inventory.Transaction
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		item, err = s.findItemForUpdate(ctx, repos.ItemRepo(), id)
		if err != nil {
			return err
		}
		tx, err = item.AdjustStock(req.DeltaQty, req.Reason)
		if err != nil {
			return err
		}
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}
		return repos.TransactionRepo().Create(ctx, tx)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.businessMetrics.RecordStockAdjustment(ctx, req.DeltaQty)
	logger.L(ctx).Info("Stock adjusted",
		zap.String("item_id", item.ID.String()),
		zap.Int("delta_qty", tx.DeltaQty),
		zap.Int("stock_after", tx.StockAfter),
	)
	return &AdjustStockResponse{
		Item:        ToItemResponse(item),
		Transaction: ToTransactionResponse(tx),
	}, nil
}

// Transactions returns a page of an item's stock movements, newest first by default.
func (s *ItemService) Transactions(ctx context.Context, itemID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	if _, err := s.findItem(ctx, s.itemRepo, itemID); err != nil {
		return nil, 0, err
	}

	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.OrderBy = filter.OrderBy
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}

	txs, total, err := s.transactionRepo.FindByItem(ctx, itemID, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransactionResponse, len(txs))
	for i := range txs {
		out[i] = ToTransactionResponse(&txs[i])
	}
	return out, total, nil
}

func (s *ItemService) findItem(ctx context.Context, repo inventory.ItemRepository, id uuid.UUID) (*inventory.Item, error) {
	item, err := repo.FindByID(ctx, id)
	return item, notFoundAs(err, ErrItemNotFound)
}

func (s *ItemService) findItemForUpdate(ctx context.Context, repo inventory.ItemRepository, id uuid.UUID) (*inventory.Item, error) {
	item, err := repo.FindByIDForUpdate(ctx, id)
	return item, notFoundAs(err, ErrItemNotFound)
}

func notFoundAs(err error, replacement error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return replacement
	}
	return err
}
