package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	inventoryapp "github.com/preorder/backend/internal/application/inventory"
	"github.com/preorder/backend/internal/domain/inventory"
	"github.com/preorder/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// seeder loads the demo catalog through the application services so the
// usual validation applies. Existing SKUs and bundle codes are left alone.
type seeder struct {
	items      *inventoryapp.ItemService
	bundles    *inventoryapp.BundleService
	itemRepo   inventory.ItemRepository
	bundleRepo inventory.BundleRepository
	log        *zap.Logger
}

type seedResult struct {
	ItemsCreated   int
	BundlesCreated int
}

func (s *seeder) run(ctx context.Context, items []itemSeed, bundles []bundleSeed) (seedResult, error) {
	var res seedResult
	ids := make(map[string]uuid.UUID, len(items))

	for _, it := range items {
		existing, err := s.itemRepo.FindBySKU(ctx, it.SKU)
		switch {
		case err == nil:
			ids[it.SKU] = existing.ID
			s.log.Debug("Item exists, skipping", zap.String("sku", it.SKU))
			continue
		case !errors.Is(err, shared.ErrNotFound):
			return res, fmt.Errorf("look up item %s: %w", it.SKU, err)
		}

		created, err := s.items.Create(ctx, inventoryapp.CreateItemRequest{
			SKU:      it.SKU,
			Name:     it.Name,
			Category: it.Category,
			StockQty: it.StockQty,
		})
		if err != nil {
			return res, fmt.Errorf("create item %s: %w", it.SKU, err)
		}
		ids[it.SKU] = created.ID
		res.ItemsCreated++
	}

	for _, b := range bundles {
		exists, err := s.bundleRepo.ExistsByCode(ctx, b.Code)
		if err != nil {
			return res, fmt.Errorf("look up bundle %s: %w", b.Code, err)
		}
		if exists {
			s.log.Debug("Bundle exists, skipping", zap.String("code", b.Code))
			continue
		}

		req := inventoryapp.CreateBundleRequest{Code: b.Code, Name: b.Name, IsHidden: b.IsHidden}
		for _, sku := range b.Components {
			id, ok := ids[sku]
			if !ok {
				return res, fmt.Errorf("bundle %s: unknown component sku %s", b.Code, sku)
			}
			req.Components = append(req.Components, inventoryapp.ComponentRequest{ItemID: id, QtyRequired: 1})
		}
		if _, err := s.bundles.Create(ctx, req); err != nil {
			return res, fmt.Errorf("create bundle %s: %w", b.Code, err)
		}
		res.BundlesCreated++
	}

	return res, nil
}
