package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
)

// CreateItemRequest represents a request to create a stocked item
type CreateItemRequest struct {
	SKU               string `json:"sku" binding:"required,min=1,max=64"`
	Name              string `json:"name" binding:"required,min=1,max=200"`
	Category          string `json:"category" binding:"max=64"`
	StockQty          int    `json:"stock_qty" binding:"min=0"`
	LowStockThreshold int    `json:"low_stock_threshold" binding:"min=0"`
}

// UpdateItemRequest changes an item's descriptive fields
type UpdateItemRequest struct {
	Name              string `json:"name" binding:"required,min=1,max=200"`
	Category          string `json:"category" binding:"max=64"`
	LowStockThreshold int    `json:"low_stock_threshold" binding:"min=0"`
}

// ItemListFilter represents item list query parameters
type ItemListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID                uuid.UUID `json:"id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	StockQty          int       `json:"stock_qty"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLowStock        bool      `json:"is_low_stock"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AdjustStockRequest applies a signed change to an item's stock
type AdjustStockRequest struct {
	DeltaQty int    `json:"delta_qty" binding:"required"`
	Reason   string `json:"reason" binding:"max=255"`
}

// TransactionListFilter represents stock movement query parameters
type TransactionListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TransactionResponse represents one stock movement
type TransactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	ItemID      *uuid.UUID `json:"item_id"`
	DeltaQty    int        `json:"delta_qty"`
	Reason      string     `json:"reason"`
	ItemSKU     string     `json:"item_sku"`
	ItemName    string     `json:"item_name"`
	StockBefore int        `json:"stock_before"`
	StockAfter  int        `json:"stock_after"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AdjustStockResponse is the item after adjustment plus the logged movement
type AdjustStockResponse struct {
	Item        ItemResponse        `json:"item"`
	Transaction TransactionResponse `json:"transaction"`
}

// ComponentRequest is one bill-of-materials line of a new bundle
type ComponentRequest struct {
	ItemID      uuid.UUID `json:"item_id" binding:"required"`
	QtyRequired int       `json:"qty_required" binding:"required,min=1"`
}

// CreateBundleRequest represents a request to create a bundle
type CreateBundleRequest struct {
	Code       string             `json:"code" binding:"required,min=1,max=64"`
	Name       string             `json:"name" binding:"required,min=1,max=200"`
	IsHidden   bool               `json:"is_hidden"`
	Components []ComponentRequest `json:"components" binding:"dive"`
}

// BundleListFilter represents bundle list query parameters
type BundleListFilter struct {
	IncludeHidden *bool `form:"include_hidden"`
}

// ComponentResponse is a bundle component with its item's current stock
type ComponentResponse struct {
	ItemID      uuid.UUID `json:"item_id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	QtyRequired int       `json:"qty_required"`
	StockQty    int       `json:"stock_qty"`
}

// BundleResponse represents a bundle with its components
type BundleResponse struct {
	ID          uuid.UUID           `json:"id"`
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	IsHidden    bool                `json:"is_hidden"`
	Components  []ComponentResponse `json:"components"`
	MaxSellable int                 `json:"max_sellable"`
	CreatedAt   time.Time           `json:"created_at"`
}

// AvailabilityResponse reports how many of a bundle can be assembled now
type AvailabilityResponse struct {
	BundleID       uuid.UUID  `json:"bundle_id"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	IsHidden       bool       `json:"is_hidden"`
	MaxSellable    int        `json:"max_sellable"`
	LimitingItemID *uuid.UUID `json:"limiting_item_id"`
}

// ToItemResponse converts a domain item to a response
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		SKU:               i.SKU,
		Name:              i.Name,
		Category:          i.Category,
		StockQty:          i.StockQty,
		LowStockThreshold: i.LowStockThreshold,
		IsLowStock:        i.IsLowStock(),
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items
func ToItemResponses(items []inventory.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}

// ToTransactionResponse converts a stock movement to a response
func ToTransactionResponse(t *inventory.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		ItemID:      t.ItemID,
		DeltaQty:    t.DeltaQty,
		Reason:      t.Reason,
		ItemSKU:     t.ItemSKU,
		ItemName:    t.ItemName,
		StockBefore: t.StockBefore,
		StockAfter:  t.StockAfter,
		CreatedAt:   t.CreatedAt,
	}
}

// ToBundleResponse converts a bundle with loaded components
func ToBundleResponse(b *inventory.Bundle) BundleResponse {
	components := make([]ComponentResponse, len(b.Components))
	for i, c := range b.Components {
		cr := ComponentResponse{ItemID: c.ItemID, QtyRequired: c.QtyRequired}
		if c.Item != nil {
			cr.SKU = c.Item.SKU
			cr.Name = c.Item.Name
			cr.StockQty = c.Item.StockQty
		}
		components[i] = cr
	}
	return BundleResponse{
		ID:          b.ID,
		Code:        b.Code,
		Name:        b.Name,
		IsHidden:    b.IsHidden,
		Components:  components,
		MaxSellable: b.MaxSellable(),
		CreatedAt:   b.CreatedAt,
	}
}

// ToAvailabilityResponse computes a bundle's availability
func ToAvailabilityResponse(b *inventory.Bundle) AvailabilityResponse {
	a := b.Availability()
	return AvailabilityResponse{
		BundleID:       b.ID,
		Code:           b.Code,
		Name:           b.Name,
		IsHidden:       b.IsHidden,
		MaxSellable:    a.MaxSellable,
		LimitingItemID: a.LimitingItemID,
	}
}
