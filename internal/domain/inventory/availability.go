package inventory

import "github.com/google/uuid"

// ComponentStock is one bill-of-materials line together with the item's stock.
type ComponentStock struct {
	ItemID      uuid.UUID
	StockQty    int
	QtyRequired int
}

// Availability is the result of checking a bundle against current stock.
type Availability struct {
	MaxSellable int
	// LimitingItemID is the component that bounds MaxSellable, or nil when no
	// component qualifies.
	LimitingItemID *uuid.UUID
}

// MaxBundleSellable returns the number of whole bundles the components allow:
// the minimum of stock / required over components that require a positive
// quantity. Components requiring zero or less are ignored. It is 0 when no
// component qualifies.
func MaxBundleSellable(components []ComponentStock) int {
	return ComputeAvailability(components).MaxSellable
}

// ComputeAvailability is MaxBundleSellable plus the component that limits it.
// Ties keep the first limiting component.
func ComputeAvailability(components []ComponentStock) Availability {
	var (
		result Availability
		found  bool
	)
	for _, c := range components {
		if c.QtyRequired <= 0 {
			continue
		}
		possible := floorDiv(c.StockQty, c.QtyRequired)
		if !found || possible < result.MaxSellable {
			id := c.ItemID
			result = Availability{MaxSellable: possible, LimitingItemID: &id}
			found = true
		}
	}
	return result
}

// floorDiv divides rounding toward negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
