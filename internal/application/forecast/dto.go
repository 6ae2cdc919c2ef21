package forecast

import (
	"time"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/forecast"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultCurveBuyRate is the sell-through rate used when a curve request omits one.
var DefaultCurveBuyRate = decimal.RequireFromString("0.85")

// CreateBatchRequest represents a request to create a product batch.
// Every field is required; an explicit zero is a valid value.
type CreateBatchRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=100"`
	UnitCost       *decimal.Decimal `json:"unit_cost" binding:"required,min=0"`
	HiddenCost     *decimal.Decimal `json:"hidden_cost" binding:"required,min=0"`
	Price          *decimal.Decimal `json:"price" binding:"required,min=0"`
	BatchProduced  *int             `json:"batch_produced" binding:"required,min=0,max=1000000"`
	BonusRuleCount *int             `json:"bonus_rule_count" binding:"required,min=0"`
}

// Spec converts the request into a domain batch spec.
func (r CreateBatchRequest) Spec() (forecast.BatchSpec, error) {
	if r.UnitCost == nil || r.HiddenCost == nil || r.Price == nil || r.BatchProduced == nil || r.BonusRuleCount == nil {
		return forecast.BatchSpec{}, shared.NewDomainError("INVALID_INPUT",
			"unit_cost, hidden_cost, price, batch_produced and bonus_rule_count are required")
	}
	return forecast.BatchSpec{
		Name:           r.Name,
		UnitCost:       *r.UnitCost,
		HiddenCost:     *r.HiddenCost,
		Price:          *r.Price,
		BatchProduced:  *r.BatchProduced,
		BonusRuleCount: *r.BonusRuleCount,
	}, nil
}

// BatchResponse represents a batch in API responses
type BatchResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	HiddenCost     decimal.Decimal `json:"hidden_cost"`
	Price          decimal.Decimal `json:"price"`
	BatchProduced  int             `json:"batch_produced"`
	BonusRuleCount int             `json:"bonus_rule_count"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateScenarioRequest carries the expected number of sets sold. Any sign is
// accepted; the estimate clamps it.
type CreateScenarioRequest struct {
	ExpectedSell *int `json:"expected_sell" binding:"required"`
}

// ScenarioResponse represents a stored scenario
type ScenarioResponse struct {
	ID                 uuid.UUID       `json:"id"`
	BatchID            uuid.UUID       `json:"batch_id"`
	ExpectedSell       int             `json:"expected_sell"`
	HiddenGiven        int             `json:"hidden_given"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	Profit             decimal.Decimal `json:"profit"`
	MarginPercent      decimal.Decimal `json:"margin_percent"`
	BreakEvenSellCount int             `json:"break_even_sell_count"`
	CreatedAt          time.Time       `json:"created_at"`
}

// SeriesRequest asks for an estimate at a fractional sell-through rate.
// ProducedSets defaults to the batch size.
type SeriesRequest struct {
	BuyRate      decimal.Decimal `json:"buy_rate" binding:"min=0"`
	ProducedSets *int            `json:"produced_sets" binding:"omitempty,min=0,max=1000000"`
}

// EstimateResponse is the full profit and loss breakdown of a series estimate
type EstimateResponse struct {
	BatchID            uuid.UUID       `json:"batch_id"`
	BuyRate            decimal.Decimal `json:"buy_rate"`
	ProducedSets       int             `json:"produced_sets"`
	SoldSets           int             `json:"sold_sets"`
	HiddenGiven        int             `json:"hidden_given"`
	BaseCost           decimal.Decimal `json:"base_cost"`
	WelfareCost        decimal.Decimal `json:"welfare_cost"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	Profit             decimal.Decimal `json:"profit"`
	MarginPercent      decimal.Decimal `json:"margin_percent"`
	BreakEvenSellCount int             `json:"break_even_sell_count"`
}

// ForecastCurveRequest sweeps batch sizes from MinBatch to MaxBatch inclusive.
type ForecastCurveRequest struct {
	MinBatch int              `json:"min_batch" binding:"min=0"`
	MaxBatch int              `json:"max_batch" binding:"min=0"`
	BuyRate  *decimal.Decimal `json:"buy_rate"`
}

// CurvePointResponse is one point of a forecast curve
type CurvePointResponse struct {
	ProducedSets int             `json:"produced_sets"`
	SoldSets     int             `json:"sold_sets"`
	BaseCost     decimal.Decimal `json:"base_cost"`
	WelfareCost  decimal.Decimal `json:"welfare_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
}

// ForecastCurveResponse holds a curve in ascending produced_sets order
type ForecastCurveResponse struct {
	BatchID uuid.UUID            `json:"batch_id"`
	BuyRate decimal.Decimal      `json:"buy_rate"`
	Points  []CurvePointResponse `json:"points"`
}

// ToBatchResponse converts a domain batch to a response
func ToBatchResponse(b *forecast.Batch) BatchResponse {
	return BatchResponse{
		ID:             b.ID,
		Name:           b.Name,
		UnitCost:       b.UnitCost,
		HiddenCost:     b.HiddenCost,
		Price:          b.Price,
		BatchProduced:  b.BatchProduced,
		BonusRuleCount: b.BonusRuleCount,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// ToBatchResponses converts a slice of batches
func ToBatchResponses(batches []forecast.Batch) []BatchResponse {
	out := make([]BatchResponse, len(batches))
	for i := range batches {
		out[i] = ToBatchResponse(&batches[i])
	}
	return out
}

// ToScenarioResponse converts a domain scenario to a response
func ToScenarioResponse(s *forecast.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ID:                 s.ID,
		BatchID:            s.BatchID,
		ExpectedSell:       s.ExpectedSell,
		HiddenGiven:        s.HiddenGiven,
		TotalCost:          s.TotalCost,
		TotalRevenue:       s.TotalRevenue,
		Profit:             s.Profit,
		MarginPercent:      s.MarginPercent,
		BreakEvenSellCount: s.BreakEvenSellCount,
		CreatedAt:          s.CreatedAt,
	}
}

func toEstimateResponse(batchID uuid.UUID, buyRate decimal.Decimal, r forecast.EstimateResult) EstimateResponse {
	return EstimateResponse{
		BatchID:            batchID,
		BuyRate:            buyRate,
		ProducedSets:       r.ProducedSets,
		SoldSets:           r.SoldSets,
		HiddenGiven:        r.HiddenGiven,
		BaseCost:           r.BaseCost,
		WelfareCost:        r.WelfareCost,
		TotalCost:          r.TotalCost,
		TotalRevenue:       r.TotalRevenue,
		Profit:             r.Profit,
		MarginPercent:      r.MarginPercent.Round(forecast.MarginScale),
		BreakEvenSellCount: r.BreakEvenSellCount,
	}
}

func toCurvePointResponses(points []forecast.CurvePoint) []CurvePointResponse {
	out := make([]CurvePointResponse, len(points))
	for i, p := range points {
		out[i] = CurvePointResponse{
			ProducedSets: p.ProducedSets,
			SoldSets:     p.SoldSets,
			BaseCost:     p.BaseCost,
			WelfareCost:  p.WelfareCost,
			TotalCost:    p.TotalCost,
			Revenue:      p.Revenue,
			Profit:       p.Profit,
		}
	}
	return out
}
