package forecast

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/forecast"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrBatchNotFound is returned when a referenced batch does not exist.
var ErrBatchNotFound = shared.NewDomainError("NOT_FOUND", "Batch not found")

// BatchService handles batch and scenario operations
type BatchService struct {
	batchRepo       forecast.BatchRepository
	scenarioRepo    forecast.ScenarioRepository
	businessMetrics *telemetry.BusinessMetrics
}

// NewBatchService creates a new BatchService
func NewBatchService(batchRepo forecast.BatchRepository, scenarioRepo forecast.ScenarioRepository) *BatchService {
	return &BatchService{
		batchRepo:    batchRepo,
		scenarioRepo: scenarioRepo,
	}
}

// SetBusinessMetrics attaches business metrics. Without them nothing is recorded.
func (s *BatchService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create validates and stores a new batch
func (s *BatchService) Create(ctx context.Context, req CreateBatchRequest) (*BatchResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "batch", "create")
	defer span.End()

	spec, err := req.Spec()
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int(telemetry.SpanAttrProducedSets, spec.BatchProduced))

	batch, err := forecast.NewBatch(spec)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(ctx, telemetry.SpanAttrBatchID, batch.ID.String())
	s.businessMetrics.RecordBatchCreated(ctx)
	logger.L(ctx).Info("Batch created",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("batch_produced", batch.BatchProduced),
	)

	resp := ToBatchResponse(batch)
	return &resp, nil
}

// List returns all batches, newest first
func (s *BatchService) List(ctx context.Context) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToBatchResponses(batches), nil
}

// GetByID returns one batch
func (s *BatchService) GetByID(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.findBatch(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBatchResponse(batch)
	return &resp, nil
}

// Delete removes a batch together with its scenarios
func (s *BatchService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.batchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrBatchNotFound
		}
		return err
	}
	logger.L(ctx).Info("Batch deleted", zap.String("batch_id", id.String()))
	return nil
}

// CreateScenario estimates the batch for an expected sales count and stores the result
func (s *BatchService) CreateScenario(ctx context.Context, batchID uuid.UUID, req CreateScenarioRequest) (*ScenarioResponse, error) {
	if req.ExpectedSell == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "expected_sell is required")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "batch", "create_scenario",
		attribute.String(telemetry.SpanAttrBatchID, batchID.String()),
		attribute.Int(telemetry.SpanAttrExpectedSell, *req.ExpectedSell))
	defer span.End()

	batch, err := s.findBatch(ctx, batchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	scenario := forecast.NewScenario(batch, *req.ExpectedSell)
	if err := s.scenarioRepo.Create(ctx, scenario); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(ctx, telemetry.SpanAttrProfit, scenario.Profit.String())
	s.businessMetrics.RecordScenarioEstimated(ctx, !scenario.Profit.IsNegative())

	resp := ToScenarioResponse(scenario)
	return &resp, nil
}

// ListScenarios returns the scenarios of a batch, newest first
func (s *BatchService) ListScenarios(ctx context.Context, batchID uuid.UUID) ([]ScenarioResponse, error) {
	if _, err := s.findBatch(ctx, batchID); err != nil {
		return nil, err
	}

	scenarios, err := s.scenarioRepo.FindByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	out := make([]ScenarioResponse, len(scenarios))
	for i := range scenarios {
		out[i] = ToScenarioResponse(&scenarios[i])
	}
	return out, nil
}

// EstimateSeries estimates the batch at a fractional sell-through rate without storing anything
func (s *BatchService) EstimateSeries(ctx context.Context, batchID uuid.UUID, req SeriesRequest) (*EstimateResponse, error) {
	if req.BuyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "buy_rate cannot be negative")
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "batch", "estimate_series",
		attribute.String(telemetry.SpanAttrBatchID, batchID.String()),
		attribute.String(telemetry.SpanAttrBuyRate, req.BuyRate.String()))
	defer span.End()

	batch, err := s.findBatch(ctx, batchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	produced := batch.BatchProduced
	if req.ProducedSets != nil {
		produced = *req.ProducedSets
	}
	result, err := batch.EstimateSeries(produced, req.BuyRate)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.businessMetrics.RecordSeriesEstimated(ctx, !result.Profit.IsNegative())

	resp := toEstimateResponse(batch.ID, req.BuyRate, result)
	return &resp, nil
}

// ForecastCurve sweeps batch sizes at a fixed sell-through rate
func (s *BatchService) ForecastCurve(ctx context.Context, batchID uuid.UUID, req ForecastCurveRequest) (*ForecastCurveResponse, error) {
	buyRate := DefaultCurveBuyRate
	if req.BuyRate != nil {
		buyRate = *req.BuyRate
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "batch", "forecast_curve",
		attribute.String(telemetry.SpanAttrBatchID, batchID.String()),
		attribute.String(telemetry.SpanAttrBuyRate, buyRate.String()))
	defer span.End()

	batch, err := s.findBatch(ctx, batchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var points []forecast.CurvePoint
	telemetry.WithProfilingLabels(ctx, map[string]string{"operation": "forecast_curve"}, func(context.Context) {
		points, err = batch.ForecastCurve(req.MinBatch, req.MaxBatch, buyRate)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(ctx, telemetry.SpanAttrCurvePoints, len(points))
	s.businessMetrics.RecordForecastCurve(ctx, len(points))

	return &ForecastCurveResponse{
		BatchID: batch.ID,
		BuyRate: buyRate,
		Points:  toCurvePointResponses(points),
	}, nil
}

func (s *BatchService) findBatch(ctx context.Context, id uuid.UUID) (*forecast.Batch, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	return batch, nil
}
