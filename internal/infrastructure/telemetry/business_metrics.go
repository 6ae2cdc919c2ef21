package telemetry

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// LowStockCounter reports how many items are at or below their threshold.
type LowStockCounter func(ctx context.Context) (int64, error)

// BusinessMetrics records forecast and inventory activity. A nil
// *BusinessMetrics is valid and records nothing.
type BusinessMetrics struct {
	logger *zap.Logger

	batchesCreated      *Counter
	scenariosEstimated  *Counter
	seriesEstimated     *Counter
	curvePoints         *Histogram
	stockAdjustments    *Counter
	availabilityQueries *Counter
}

// BusinessMetricsConfig configures NewBusinessMetrics.
type BusinessMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
	// LowStock feeds the preorder_items_low_stock gauge when set.
	LowStock LowStockCounter
}

// NewBusinessMetrics creates the business instruments on cfg.Meter.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{logger: logger}
	var err error
	if bm.batchesCreated, err = NewCounter(cfg.Meter, "preorder_batches_created_total",
		"Product batches created", "{batches}"); err != nil {
		return nil, err
	}
	if bm.scenariosEstimated, err = NewCounter(cfg.Meter, "preorder_scenarios_estimated_total",
		"Scenario estimates stored, by profit outcome", "{scenarios}"); err != nil {
		return nil, err
	}
	if bm.seriesEstimated, err = NewCounter(cfg.Meter, "preorder_series_estimated_total",
		"Buy-rate series estimates computed", "{estimates}"); err != nil {
		return nil, err
	}
	if bm.curvePoints, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "preorder_forecast_curve_points",
		Description: "Points returned per forecast curve",
		Unit:        "{points}",
		Buckets:     CurveSizeBuckets,
	}); err != nil {
		return nil, err
	}
	if bm.stockAdjustments, err = NewCounter(cfg.Meter, "preorder_stock_adjustments_total",
		"Inventory stock adjustments", "{adjustments}"); err != nil {
		return nil, err
	}
	if bm.availabilityQueries, err = NewCounter(cfg.Meter, "preorder_availability_queries_total",
		"Bundle availability computations", "{queries}"); err != nil {
		return nil, err
	}

	if cfg.LowStock != nil {
		if err := bm.registerLowStockGauge(cfg.Meter, cfg.LowStock); err != nil {
			return nil, err
		}
	}
	return bm, nil
}

func (bm *BusinessMetrics) registerLowStockGauge(meter metric.Meter, count LowStockCounter) error {
	_, err := meter.Int64ObservableGauge("preorder_items_low_stock",
		metric.WithDescription("Items at or below their low stock threshold"),
		metric.WithUnit("{items}"),
		metric.WithInt64Callback(func(ctx context.Context, o metric.Int64Observer) error {
			n, err := count(ctx)
			if err != nil {
				bm.logger.Warn("Failed to count low stock items", zap.Error(err))
				return nil
			}
			o.Observe(n)
			return nil
		}),
	)
	return err
}

// RecordBatchCreated counts a new product batch.
func (bm *BusinessMetrics) RecordBatchCreated(ctx context.Context) {
	if bm == nil {
		return
	}
	bm.batchesCreated.Inc(ctx)
}

// RecordScenarioEstimated counts a stored scenario, labelled profit or loss.
func (bm *BusinessMetrics) RecordScenarioEstimated(ctx context.Context, profitable bool) {
	if bm == nil {
		return
	}
	bm.scenariosEstimated.Inc(ctx, attribute.String(AttrOutcome, outcome(profitable)))
}

// RecordSeriesEstimated counts a series estimate, labelled profit or loss.
func (bm *BusinessMetrics) RecordSeriesEstimated(ctx context.Context, profitable bool) {
	if bm == nil {
		return
	}
	bm.seriesEstimated.Inc(ctx, attribute.String(AttrOutcome, outcome(profitable)))
}

// RecordForecastCurve records the size of a computed curve.
func (bm *BusinessMetrics) RecordForecastCurve(ctx context.Context, points int) {
	if bm == nil {
		return
	}
	bm.curvePoints.Record(ctx, float64(points))
}

// RecordStockAdjustment counts an adjustment, labelled in or out by the sign of delta.
func (bm *BusinessMetrics) RecordStockAdjustment(ctx context.Context, delta int) {
	if bm == nil {
		return
	}
	direction := "in"
	if delta < 0 {
		direction = "out"
	}
	bm.stockAdjustments.Inc(ctx, attribute.String(AttrDirection, direction))
}

// RecordAvailabilityQuery counts an availability computation; scope is
// "bundle" for a single bundle and "all" for the full listing.
func (bm *BusinessMetrics) RecordAvailabilityQuery(ctx context.Context, scope string) {
	if bm == nil {
		return
	}
	bm.availabilityQueries.Inc(ctx, attribute.String(AttrScope, scope))
}

func outcome(profitable bool) string {
	if profitable {
		return "profit"
	}
	return "loss"
}

// RegisterDBPoolMetrics exposes connection pool statistics as observable gauges.
func RegisterDBPoolMetrics(meter metric.Meter, stats func() sql.DBStats) error {
	if meter == nil {
		return ErrMeterNil
	}
	open, err := meter.Int64ObservableGauge("db_pool_open_connections",
		metric.WithDescription("Open database connections"), metric.WithUnit("{connections}"))
	if err != nil {
		return err
	}
	inUse, err := meter.Int64ObservableGauge("db_pool_in_use_connections",
		metric.WithDescription("Database connections in use"), metric.WithUnit("{connections}"))
	if err != nil {
		return err
	}
	idle, err := meter.Int64ObservableGauge("db_pool_idle_connections",
		metric.WithDescription("Idle database connections"), metric.WithUnit("{connections}"))
	if err != nil {
		return err
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_count",
		metric.WithDescription("Connections waited for"), metric.WithUnit("{waits}"))
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := stats()
		o.ObserveInt64(open, int64(s.OpenConnections))
		o.ObserveInt64(inUse, int64(s.InUse))
		o.ObserveInt64(idle, int64(s.Idle))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, open, inUse, idle, waits)
	return err
}
