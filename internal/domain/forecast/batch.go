package forecast

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/preorder/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxBatchNameLength is the longest accepted batch name, in characters.
const MaxBatchNameLength = 100

// Batch is one production run of full sets with its costs fixed at creation.
type Batch struct {
	shared.BaseEntity
	Name          string
	UnitCost      decimal.Decimal
	HiddenCost    decimal.Decimal
	Price         decimal.Decimal
	BatchProduced int
	// BonusRuleCount is recorded with the batch but not consulted by any estimate.
	BonusRuleCount int
}

// BatchSpec carries the user-supplied fields of a new batch.
type BatchSpec struct {
	Name           string
	UnitCost       decimal.Decimal
	HiddenCost     decimal.Decimal
	Price          decimal.Decimal
	BatchProduced  int
	BonusRuleCount int
}

// NewBatch validates spec and returns a new batch.
func NewBatch(spec BatchSpec) (*Batch, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Batch name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxBatchNameLength {
		return nil, shared.NewDomainError("INVALID_INPUT", "Batch name cannot exceed 100 characters")
	}
	if spec.UnitCost.IsNegative() || spec.HiddenCost.IsNegative() || spec.Price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Costs and price cannot be negative")
	}
	if err := checkProduced("batch_produced", spec.BatchProduced); err != nil {
		return nil, err
	}
	if spec.BonusRuleCount < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "bonus_rule_count cannot be negative")
	}

	return &Batch{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		UnitCost:       spec.UnitCost,
		HiddenCost:     spec.HiddenCost,
		Price:          spec.Price,
		BatchProduced:  spec.BatchProduced,
		BonusRuleCount: spec.BonusRuleCount,
	}, nil
}

// Estimate runs the estimator against the batch for an absolute sales expectation.
func (b *Batch) Estimate(expectedSell int) EstimateResult {
	return RunEstimate(EstimateInput{
		UnitCost:      b.UnitCost,
		HiddenCost:    b.HiddenCost,
		Price:         b.Price,
		BatchProduced: b.BatchProduced,
		ExpectedSell:  expectedSell,
	})
}

// EstimateSeries runs the series estimator for producedSets at buyRate.
// producedSets must lie in [0, MaxBatchProduced].
func (b *Batch) EstimateSeries(producedSets int, buyRate decimal.Decimal) (EstimateResult, error) {
	if err := checkProduced("produced_sets", producedSets); err != nil {
		return EstimateResult{}, err
	}
	return RunEstimateSeries(SeriesInput{
		UnitCost:     b.UnitCost,
		HiddenCost:   b.HiddenCost,
		BundlePrice:  b.Price,
		ProducedSets: producedSets,
		BuyRate:      buyRate,
	}), nil
}

func checkProduced(field string, sets int) error {
	switch {
	case sets < 0:
		return shared.NewDomainError("INVALID_INPUT", field+" cannot be negative")
	case sets > MaxBatchProduced:
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("%s cannot exceed %d", field, MaxBatchProduced))
	}
	return nil
}

// ForecastCurve sweeps batch sizes in [minProduced, maxProduced] at buyRate.
func (b *Batch) ForecastCurve(minProduced, maxProduced int, buyRate decimal.Decimal) ([]CurvePoint, error) {
	return BuildForecastCurve(CurveInput{
		UnitCost:    b.UnitCost,
		HiddenCost:  b.HiddenCost,
		BundlePrice: b.Price,
		MinProduced: minProduced,
		MaxProduced: maxProduced,
		BuyRate:     buyRate,
	})
}
