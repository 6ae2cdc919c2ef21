package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrBundleNotFound is returned when a referenced bundle does not exist.
var ErrBundleNotFound = shared.NewDomainError("NOT_FOUND", "Bundle not found")

// BundleService handles bundles and their availability
type BundleService struct {
	bundleRepo      inventory.BundleRepository
	itemRepo        inventory.ItemRepository
	businessMetrics *telemetry.BusinessMetrics
}

// NewBundleService creates a new BundleService
func NewBundleService(bundleRepo inventory.BundleRepository, itemRepo inventory.ItemRepository) *BundleService {
	return &BundleService{bundleRepo: bundleRepo, itemRepo: itemRepo}
}

// SetBusinessMetrics attaches business metrics.
func (s *BundleService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create stores a bundle and its components. Every component item must exist.
func (s *BundleService) Create(ctx context.Context, req CreateBundleRequest) (*BundleResponse, error) {
	bundle, err := inventory.NewBundle(req.Code, req.Name, req.IsHidden)
	if err != nil {
		return nil, err
	}

	exists, err := s.bundleRepo.ExistsByCode(ctx, bundle.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Bundle with this code already exists")
	}

	ids := make([]uuid.UUID, 0, len(req.Components))
	for _, c := range req.Components {
		ids = append(ids, c.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*inventory.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	for _, c := range req.Components {
		item, ok := byID[c.ItemID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Component item "+c.ItemID.String()+" not found")
		}
		if err := bundle.AddComponent(item, c.QtyRequired); err != nil {
			return nil, err
		}
	}

	if err := s.bundleRepo.Create(ctx, bundle); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Bundle with this code already exists")
		}
		return nil, err
	}

	logger.L(ctx).Info("Bundle created",
		zap.String("bundle_id", bundle.ID.String()),
		zap.String("code", bundle.Code),
		zap.Int("components", len(bundle.Components)),
	)
	resp := ToBundleResponse(bundle)
	return &resp, nil
}

// List returns bundles ordered by code. Hidden bundles are included unless
// includeHidden is false.
func (s *BundleService) List(ctx context.Context, includeHidden bool) ([]BundleResponse, error) {
	bundles, err := s.bundleRepo.FindAll(ctx, includeHidden)
	if err != nil {
		return nil, err
	}
	out := make([]BundleResponse, len(bundles))
	for i := range bundles {
		out[i] = ToBundleResponse(&bundles[i])
	}
	return out, nil
}

// GetByID returns one bundle with its components
func (s *BundleService) GetByID(ctx context.Context, id uuid.UUID) (*BundleResponse, error) {
	bundle, err := s.findBundle(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBundleResponse(bundle)
	return &resp, nil
}

// Delete removes a bundle and its component links; the items are untouched.
func (s *BundleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.bundleRepo.Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrBundleNotFound)
	}
	logger.L(ctx).Info("Bundle deleted", zap.String("bundle_id", id.String()))
	return nil
}

// Availability computes how many of one bundle the current stock supports
func (s *BundleService) Availability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bundle", "availability",
		attribute.String(telemetry.SpanAttrBundleID, id.String()))
	defer span.End()

	bundle, err := s.findBundle(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToAvailabilityResponse(bundle)
	telemetry.SetAttributes(ctx,
		attribute.String(telemetry.SpanAttrBundleCode, bundle.Code),
		attribute.Int(telemetry.SpanAttrMaxSellable, resp.MaxSellable))
	s.businessMetrics.RecordAvailabilityQuery(ctx, "bundle")
	return &resp, nil
}

// AllAvailability computes availability for every bundle, hidden ones included
func (s *BundleService) AllAvailability(ctx context.Context) ([]AvailabilityResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bundle", "all_availability")
	defer span.End()

	bundles, err := s.bundleRepo.FindAll(ctx, true)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	out := make([]AvailabilityResponse, len(bundles))
	telemetry.WithProfilingLabels(ctx, map[string]string{"operation": "bundle_availability"}, func(context.Context) {
		for i := range bundles {
			out[i] = ToAvailabilityResponse(&bundles[i])
		}
	})
	s.businessMetrics.RecordAvailabilityQuery(ctx, "all")
	return out, nil
}

func (s *BundleService) findBundle(ctx context.Context, id uuid.UUID) (*inventory.Bundle, error) {
	bundle, err := s.bundleRepo.FindByID(ctx, id)
	return bundle, notFoundAs(err, ErrBundleNotFound)
}
