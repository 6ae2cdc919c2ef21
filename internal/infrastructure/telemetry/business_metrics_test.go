package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{})
	assert.ErrorIs(t, err, ErrMeterNil)
	assert.Nil(t, bm)
}

func TestBusinessMetrics_NilReceiverIsSafe(t *testing.T) {
	var bm *BusinessMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		bm.RecordBatchCreated(ctx)
		bm.RecordScenarioEstimated(ctx, true)
		bm.RecordSeriesEstimated(ctx, false)
		bm.RecordForecastCurve(ctx, 10)
		bm.RecordStockAdjustment(ctx, -1)
		bm.RecordAvailabilityQuery(ctx, "all")
	})
}

func TestBusinessMetrics_Records(t *testing.T) {
	reader, mp := newManualMeter(t)
	bm, err := NewBusinessMetrics(BusinessMetricsConfig{
		Meter:    mp.Meter("business"),
		LowStock: func(context.Context) (int64, error) { return 2, nil },
	})
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordBatchCreated(ctx)
	bm.RecordScenarioEstimated(ctx, true)
	bm.RecordScenarioEstimated(ctx, false)
	bm.RecordScenarioEstimated(ctx, false)
	bm.RecordForecastCurve(ctx, 101)
	bm.RecordStockAdjustment(ctx, 5)
	bm.RecordStockAdjustment(ctx, -3)
	bm.RecordAvailabilityQuery(ctx, "bundle")

	metrics := collect(t, reader)

	batches := metrics["preorder_batches_created_total"].Data.(metricdata.Sum[int64])
	assert.Equal(t, int64(1), batches.DataPoints[0].Value)

	scenarios := metrics["preorder_scenarios_estimated_total"].Data.(metricdata.Sum[int64])
	byOutcome := map[string]int64{}
	for _, dp := range scenarios.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key(AttrOutcome))
		byOutcome[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"profit": 1, "loss": 2}, byOutcome)

	adjustments := metrics["preorder_stock_adjustments_total"].Data.(metricdata.Sum[int64])
	assert.Len(t, adjustments.DataPoints, 2)

	curve := metrics["preorder_forecast_curve_points"].Data.(metricdata.Histogram[float64])
	assert.Equal(t, 101.0, curve.DataPoints[0].Sum)

	lowStock := metrics["preorder_items_low_stock"].Data.(metricdata.Gauge[int64])
	assert.Equal(t, int64(2), lowStock.DataPoints[0].Value)
}

func TestBusinessMetrics_LowStockErrorSkipsObservation(t *testing.T) {
	reader, mp := newManualMeter(t)
	_, err := NewBusinessMetrics(BusinessMetricsConfig{
		Meter:    mp.Meter("business"),
		LowStock: func(context.Context) (int64, error) { return 0, errors.New("db down") },
	})
	require.NoError(t, err)

	metrics := collect(t, reader)
	if m, ok := metrics["preorder_items_low_stock"]; ok {
		assert.Empty(t, m.Data.(metricdata.Gauge[int64]).DataPoints)
	}
}
