// Package forecast models production batches of preorder merchandise and
// estimates the profitability of selling them.
//
// A batch is a run of full sets, each made of three single items. Every item
// of every set is produced up front, so the base cost is sunk regardless of
// sales. Each set sold also gives away one hidden bonus item, which is the only
// variable cost.
package forecast

import (
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemsPerSet is the number of single items produced for every full set.
const ItemsPerSet = 3

// MaxCurvePoints bounds the width of a forecast curve request.
const MaxCurvePoints = 10000

// MaxBatchProduced is the largest batch size, in sets, any estimate accepts.
const MaxBatchProduced = 1_000_000

var (
	hundred     = decimal.NewFromInt(100)
	itemsPerSet = decimal.NewFromInt(ItemsPerSet)
)

// EstimateInput holds the batch economics and an absolute sales expectation.
type EstimateInput struct {
	UnitCost      decimal.Decimal
	HiddenCost    decimal.Decimal
	Price         decimal.Decimal
	BatchProduced int
	// ExpectedSell may be any integer; it is clamped to [0, BatchProduced].
	ExpectedSell int
}

// SeriesInput holds the batch economics and a fractional sell-through rate.
type SeriesInput struct {
	UnitCost     decimal.Decimal
	HiddenCost   decimal.Decimal
	BundlePrice  decimal.Decimal
	ProducedSets int
	BuyRate      decimal.Decimal
}

// EstimateResult is the profit and loss of one sales scenario.
type EstimateResult struct {
	ProducedSets       int
	SoldSets           int
	HiddenGiven        int
	BaseCost           decimal.Decimal
	WelfareCost        decimal.Decimal
	TotalCost          decimal.Decimal
	TotalRevenue       decimal.Decimal
	Profit             decimal.Decimal
	MarginPercent      decimal.Decimal
	BreakEvenSellCount int
}

// RunEstimate computes the scenario for selling ExpectedSell sets out of the batch.
func RunEstimate(in EstimateInput) EstimateResult {
	sold := in.ExpectedSell
	if sold > in.BatchProduced {
		sold = in.BatchProduced
	}
	if sold < 0 {
		sold = 0
	}
	return estimate(in.UnitCost, in.HiddenCost, in.Price, in.BatchProduced, sold)
}

// RunEstimateSeries computes the scenario for selling ProducedSets*BuyRate sets.
// The product is rounded half to even and clamped to [0, ProducedSets].
func RunEstimateSeries(in SeriesInput) EstimateResult {
	return estimate(in.UnitCost, in.HiddenCost, in.BundlePrice, in.ProducedSets, SoldFromRate(in.ProducedSets, in.BuyRate))
}

// SoldFromRate converts a sell-through rate into a whole number of sets.
func SoldFromRate(produced int, rate decimal.Decimal) int {
	sold := int(decimal.NewFromInt(int64(produced)).Mul(rate).RoundBank(0).IntPart())
	if sold > produced {
		sold = produced
	}
	if sold < 0 {
		sold = 0
	}
	return sold
}

func estimate(unitCost, hiddenCost, price decimal.Decimal, produced, sold int) EstimateResult {
	soldD := decimal.NewFromInt(int64(sold))

	baseCost := BaseCost(unitCost, produced)
	welfareCost := hiddenCost.Mul(soldD)
	totalCost := baseCost.Add(welfareCost)
	revenue := price.Mul(soldD)
	profit := revenue.Sub(totalCost)

	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = profit.Div(revenue).Mul(hundred)
	}

	return EstimateResult{
		ProducedSets:       produced,
		SoldSets:           sold,
		HiddenGiven:        sold,
		BaseCost:           baseCost,
		WelfareCost:        welfareCost,
		TotalCost:          totalCost,
		TotalRevenue:       revenue,
		Profit:             profit,
		MarginPercent:      margin,
		BreakEvenSellCount: BreakEven(baseCost, hiddenCost, price, produced),
	}
}

// BaseCost is the sunk cost of producing every item of every set.
func BaseCost(unitCost decimal.Decimal, produced int) decimal.Decimal {
	return decimal.NewFromInt(int64(produced)).Mul(itemsPerSet).Mul(unitCost)
}

// BreakEven returns the smallest x in [0, produced] for which selling x sets
// is not a loss. When no x qualifies it returns produced.
//
// Profit at x is x*(price-hiddenCost) - baseCost, so the answer is
// ceil(baseCost / (price-hiddenCost)). The quotient is only approximate for
// non-terminating decimals; the loops settle it on the exact boundary.
func BreakEven(baseCost, hiddenCost, price decimal.Decimal, produced int) int {
	if !baseCost.IsPositive() {
		return 0
	}
	perSet := price.Sub(hiddenCost)
	if !perSet.IsPositive() {
		return produced
	}

	covers := func(x int64) bool {
		return !decimal.NewFromInt(x).Mul(perSet).LessThan(baseCost)
	}
	approx := baseCost.Div(perSet).Ceil()
	if approx.GreaterThan(decimal.NewFromInt(int64(produced))) {
		return produced
	}
	x := approx.IntPart()
	for x > 0 && covers(x-1) {
		x--
	}
	for !covers(x) {
		x++
	}
	return int(min(x, int64(produced)))
}

// CurveInput describes a sweep over batch sizes at a fixed sell-through rate.
type CurveInput struct {
	UnitCost    decimal.Decimal
	HiddenCost  decimal.Decimal
	BundlePrice decimal.Decimal
	MinProduced int
	MaxProduced int
	BuyRate     decimal.Decimal
}

// CurvePoint is the outcome of producing ProducedSets sets.
type CurvePoint struct {
	ProducedSets int
	SoldSets     int
	BaseCost     decimal.Decimal
	WelfareCost  decimal.Decimal
	TotalCost    decimal.Decimal
	Revenue      decimal.Decimal
	Profit       decimal.Decimal
}

// BuildForecastCurve evaluates the series estimate for every batch size in
// [MinProduced, MaxProduced], in ascending order.
func BuildForecastCurve(in CurveInput) ([]CurvePoint, error) {
	if in.MinProduced < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "min_batch cannot be negative")
	}
	if in.MaxProduced < in.MinProduced {
		return nil, shared.NewDomainError("INVALID_INPUT", "max_batch must not be less than min_batch")
	}
	if in.MaxProduced > MaxBatchProduced {
		return nil, shared.NewDomainError("INVALID_INPUT", "max_batch cannot exceed 1000000")
	}
	if in.MaxProduced-in.MinProduced+1 > MaxCurvePoints {
		return nil, shared.NewDomainError("INVALID_INPUT", "forecast curve range is too wide")
	}
	if in.BuyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "buy_rate cannot be negative")
	}

	points := make([]CurvePoint, 0, in.MaxProduced-in.MinProduced+1)
	for produced := in.MinProduced; produced <= in.MaxProduced; produced++ {
		sold := SoldFromRate(produced, in.BuyRate)
		soldD := decimal.NewFromInt(int64(sold))

		base := BaseCost(in.UnitCost, produced)
		welfare := in.HiddenCost.Mul(soldD)
		total := base.Add(welfare)
		revenue := in.BundlePrice.Mul(soldD)

		points = append(points, CurvePoint{
			ProducedSets: produced,
			SoldSets:     sold,
			BaseCost:     base,
			WelfareCost:  welfare,
			TotalCost:    total,
			Revenue:      revenue,
			Profit:       revenue.Sub(total),
		})
	}
	return points, nil
}
