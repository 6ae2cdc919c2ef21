package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transaction is an append-only stock movement record. It keeps a snapshot of
// the item so the entry stays readable after the item is deleted, at which
// point ItemID becomes nil.
type Transaction struct {
	ID          uuid.UUID
	ItemID      *uuid.UUID
	DeltaQty    int
	Reason      string
	ItemSKU     string
	ItemName    string
	StockBefore int
	StockAfter  int
	CreatedAt   time.Time
}

// NewTransaction records a change of delta on item, whose stock was before.
func NewTransaction(item *Item, delta int, reason string, before int) *Transaction {
	itemID := item.ID
	return &Transaction{
		ID:          uuid.New(),
		ItemID:      &itemID,
		DeltaQty:    delta,
		Reason:      strings.TrimSpace(reason),
		ItemSKU:     item.SKU,
		ItemName:    item.Name,
		StockBefore: before,
		StockAfter:  before + delta,
		CreatedAt:   time.Now(),
	}
}
