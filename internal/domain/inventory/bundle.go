package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/shared"
)

// Bundle is a purchasable set assembled from component items.
type Bundle struct {
	shared.BaseEntity
	Code       string
	Name       string
	IsHidden   bool
	Components []BundleComponent
}

// BundleComponent links one item into a bundle with the quantity one bundle consumes.
type BundleComponent struct {
	ID          uuid.UUID
	BundleID    uuid.UUID
	ItemID      uuid.UUID
	QtyRequired int
	// Item is the linked item when loaded.
	Item *Item
}

// NewBundle validates the fields and returns a bundle without components.
func NewBundle(code, name string, isHidden bool) (*Bundle, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bundle code cannot be empty")
	}
	if len(code) > 64 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bundle code cannot exceed 64 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bundle name cannot be empty")
	}
	return &Bundle{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       strings.TrimSpace(name),
		IsHidden:   isHidden,
		Components: make([]BundleComponent, 0),
	}, nil
}

// AddComponent links item into the bundle. An item may appear only once per bundle.
func (b *Bundle) AddComponent(item *Item, qtyRequired int) error {
	if item == nil {
		return shared.NewDomainError("INVALID_INPUT", "Component item is required")
	}
	for _, c := range b.Components {
		if c.ItemID == item.ID {
			return shared.NewDomainError("INVALID_INPUT", "Item "+item.SKU+" is already a component of this bundle")
		}
	}
	b.Components = append(b.Components, BundleComponent{
		ID:          uuid.New(),
		BundleID:    b.ID,
		ItemID:      item.ID,
		QtyRequired: qtyRequired,
		Item:        item,
	})
	return nil
}

// Availability reports how many bundles the current component stock supports.
func (b *Bundle) Availability() Availability {
	stocks := make([]ComponentStock, 0, len(b.Components))
	for _, c := range b.Components {
		stock := 0
		if c.Item != nil {
			stock = c.Item.StockQty
		}
		stocks = append(stocks, ComponentStock{
			ItemID:      c.ItemID,
			StockQty:    stock,
			QtyRequired: c.QtyRequired,
		})
	}
	return ComputeAvailability(stocks)
}

// MaxSellable is the number of complete bundles the current stock can assemble.
func (b *Bundle) MaxSellable() int {
	return b.Availability().MaxSellable
}
