package forecast

import (
	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MarginScale is the number of decimal places a stored margin keeps.
const MarginScale = 4

// Scenario is the persisted outcome of estimating a batch against an expected
// sales count. It is never modified after creation.
type Scenario struct {
	shared.BaseEntity
	BatchID            uuid.UUID
	ExpectedSell       int
	HiddenGiven        int
	TotalCost          decimal.Decimal
	TotalRevenue       decimal.Decimal
	Profit             decimal.Decimal
	MarginPercent      decimal.Decimal
	BreakEvenSellCount int
}

// NewScenario estimates the batch for expectedSell and captures the result.
// expectedSell is stored as given; only the estimate clamps it.
func NewScenario(batch *Batch, expectedSell int) *Scenario {
	result := batch.Estimate(expectedSell)
	return &Scenario{
		BaseEntity:         shared.NewBaseEntity(),
		BatchID:            batch.ID,
		ExpectedSell:       expectedSell,
		HiddenGiven:        result.HiddenGiven,
		TotalCost:          result.TotalCost,
		TotalRevenue:       result.TotalRevenue,
		Profit:             result.Profit,
		MarginPercent:      result.MarginPercent.Round(MarginScale),
		BreakEvenSellCount: result.BreakEvenSellCount,
	}
}
