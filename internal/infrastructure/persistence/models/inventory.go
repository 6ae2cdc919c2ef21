package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
)

// ItemModel is the persistence model for a stocked Item.
type ItemModel struct {
	BaseModel
	SKU               string `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
	Name              string `gorm:"type:varchar(200);not null"`
	Category          string `gorm:"type:varchar(64);index"`
	StockQty          int    `gorm:"not null;default:0"`
	LowStockThreshold int    `gorm:"not null;default:0"`
	// Associations
	Transactions []TransactionModel `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *inventory.Item {
	return &inventory.Item{
		BaseEntity:        m.entity(),
		SKU:               m.SKU,
		Name:              m.Name,
		Category:          m.Category,
		StockQty:          m.StockQty,
		LowStockThreshold: m.LowStockThreshold,
	}
}

// FromDomain populates the persistence model from a domain Item entity.
func (m *ItemModel) FromDomain(i *inventory.Item) {
	m.BaseModel = baseFrom(i.BaseEntity)
	m.SKU = i.SKU
	m.Name = i.Name
	m.Category = i.Category
	m.StockQty = i.StockQty
	m.LowStockThreshold = i.LowStockThreshold
}

// ItemModelFromDomain creates a new persistence model from a domain Item entity.
func ItemModelFromDomain(i *inventory.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}

// BundleModel is the persistence model for the Bundle aggregate root.
type BundleModel struct {
	BaseModel
	Code     string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	IsHidden bool   `gorm:"not null;default:false"`
	// Associations
	Components []BundleComponentModel `gorm:"foreignKey:BundleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BundleModel) TableName() string {
	return "bundles"
}

// ToDomain converts the persistence model to a domain Bundle, including any
// loaded components.
func (m *BundleModel) ToDomain() *inventory.Bundle {
	b := &inventory.Bundle{
		BaseEntity: m.entity(),
		Code:       m.Code,
		Name:       m.Name,
		IsHidden:   m.IsHidden,
		Components: make([]inventory.BundleComponent, len(m.Components)),
	}
	for i := range m.Components {
		b.Components[i] = *m.Components[i].ToDomain()
	}
	return b
}

// FromDomain populates the persistence model from a domain Bundle. Component
// items are referenced by id only and never written through the bundle.
func (m *BundleModel) FromDomain(b *inventory.Bundle) {
	m.BaseModel = baseFrom(b.BaseEntity)
	m.Code = b.Code
	m.Name = b.Name
	m.IsHidden = b.IsHidden
	m.Components = make([]BundleComponentModel, len(b.Components))
	for i := range b.Components {
		m.Components[i] = *BundleComponentModelFromDomain(&b.Components[i])
	}
}

// BundleModelFromDomain creates a new persistence model from a domain Bundle.
func BundleModelFromDomain(b *inventory.Bundle) *BundleModel {
	m := &BundleModel{}
	m.FromDomain(b)
	return m
}

// BundleComponentModel links an item into a bundle.
type BundleComponentModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	BundleID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bundle_item,priority:1"`
	ItemID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_bundle_item,priority:2;index"`
	QtyRequired int        `gorm:"not null;default:1"`
	Item        *ItemModel `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BundleComponentModel) TableName() string {
	return "bundle_components"
}

// ToDomain converts the persistence model to a domain BundleComponent.
func (m *BundleComponentModel) ToDomain() *inventory.BundleComponent {
	c := &inventory.BundleComponent{
		ID:          m.ID,
		BundleID:    m.BundleID,
		ItemID:      m.ItemID,
		QtyRequired: m.QtyRequired,
	}
	if m.Item != nil {
		c.Item = m.Item.ToDomain()
	}
	return c
}

// BundleComponentModelFromDomain creates a persistence model from a domain BundleComponent.
func BundleComponentModelFromDomain(c *inventory.BundleComponent) *BundleComponentModel {
	return &BundleComponentModel{
		ID:          c.ID,
		BundleID:    c.BundleID,
		ItemID:      c.ItemID,
		QtyRequired: c.QtyRequired,
	}
}

// TransactionModel is the persistence model for a stock movement log entry.
type TransactionModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	ItemID      *uuid.UUID `gorm:"type:uuid;index"`
	DeltaQty    int        `gorm:"not null"`
	Reason      string     `gorm:"type:varchar(255)"`
	ItemSKU     string     `gorm:"column:item_sku;type:varchar(64);not null"`
	ItemName    string     `gorm:"type:varchar(200);not null"`
	StockBefore int        `gorm:"not null"`
	StockAfter  int        `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "inventory_transactions"
}

// ToDomain converts the persistence model to a domain Transaction.
func (m *TransactionModel) ToDomain() *inventory.Transaction {
	return &inventory.Transaction{
		ID:          m.ID,
		ItemID:      m.ItemID,
		DeltaQty:    m.DeltaQty,
		Reason:      m.Reason,
		ItemSKU:     m.ItemSKU,
		ItemName:    m.ItemName,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		CreatedAt:   m.CreatedAt,
	}
}

// TransactionModelFromDomain creates a persistence model from a domain Transaction.
func TransactionModelFromDomain(t *inventory.Transaction) *TransactionModel {
	return &TransactionModel{
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
