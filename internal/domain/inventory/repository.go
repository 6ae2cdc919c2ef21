package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/shared"
)

// ItemFilter narrows an item listing
type ItemFilter struct {
	shared.Filter
	Category string
}

// ItemRepository persists items
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	// FindByIDForUpdate loads the item and locks its row until the surrounding
	// transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Item, error)
	FindBySKU(ctx context.Context, sku string) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	FindAll(ctx context.Context, filter ItemFilter) ([]Item, int64, error)
	// FindLowStock returns items whose stock is at or below their threshold
	FindLowStock(ctx context.Context) ([]Item, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BundleRepository persists bundles together with their components.
// Bundles are returned with components and their items loaded.
type BundleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bundle, error)
	FindByCode(ctx context.Context, code string) (*Bundle, error)
	FindAll(ctx context.Context, includeHidden bool) ([]Bundle, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, bundle *Bundle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository persists the stock movement log. Entries are never updated.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]Transaction, int64, error)
}
