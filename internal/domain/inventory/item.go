package inventory

import (
	"strings"

	"github.com/preorder/backend/internal/domain/shared"
)

// Item is a single stocked unit, such as one badge or standee design.
type Item struct {
	shared.BaseEntity
	SKU               string
	Name              string
	Category          string
	StockQty          int
	LowStockThreshold int
}

// NewItem validates the fields and returns a new item.
func NewItem(sku, name, category string, stockQty, lowStockThreshold int) (*Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "SKU cannot be empty")
	}
	if len(sku) > 64 {
		return nil, shared.NewDomainError("INVALID_INPUT", "SKU cannot exceed 64 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}
	if stockQty < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "stock_qty cannot be negative")
	}
	if lowStockThreshold < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "low_stock_threshold cannot be negative")
	}

	return &Item{
		BaseEntity:        shared.NewBaseEntity(),
		SKU:               sku,
		Name:              strings.TrimSpace(name),
		Category:          strings.TrimSpace(category),
		StockQty:          stockQty,
		LowStockThreshold: lowStockThreshold,
	}, nil
}

// Update changes the descriptive fields. The SKU and stock are not editable here.
func (i *Item) Update(name, category string, lowStockThreshold int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}
	if lowStockThreshold < 0 {
		return shared.NewDomainError("INVALID_INPUT", "low_stock_threshold cannot be negative")
	}
	i.Name = strings.TrimSpace(name)
	i.Category = strings.TrimSpace(category)
	i.LowStockThreshold = lowStockThreshold
	i.Touch()
	return nil
}

// AdjustStock applies delta to the stock level and returns the log entry
// describing the change. Stock may not drop below zero.
func (i *Item) AdjustStock(delta int, reason string) (*Transaction, error) {
	if delta == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "delta_qty cannot be zero")
	}
	if i.StockQty+delta < 0 {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Adjustment would make stock negative")
	}

	before := i.StockQty
	i.StockQty += delta
	i.Touch()

	return NewTransaction(i, delta, reason, before), nil
}

// IsLowStock reports whether stock is at or below the item's threshold.
func (i *Item) IsLowStock() bool {
	return i.StockQty <= i.LowStockThreshold
}
