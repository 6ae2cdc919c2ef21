// Command seed loads the demo items and bundles into the configured database
// and prints how many of each bundle can currently be sold.
package main

import (
	"context"
	"fmt"

	inventoryapp "github.com/preorder/backend/internal/application/inventory"
	"github.com/preorder/backend/internal/infrastructure/config"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	itemRepo := persistence.NewGormItemRepository(db.DB)
	bundleRepo := persistence.NewGormBundleRepository(db.DB)
	txRepo := persistence.NewGormInventoryTransactionRepository(db.DB)

	bundleService := inventoryapp.NewBundleService(bundleRepo, itemRepo)
	s := &seeder{
		items:      inventoryapp.NewItemService(itemRepo, txRepo, persistence.NewGormTransactionScope(db.DB)),
		bundles:    bundleService,
		itemRepo:   itemRepo,
		bundleRepo: bundleRepo,
		log:        log,
	}

	ctx := context.Background()
	res, err := s.run(ctx, seedItems, seedBundles)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seed complete",
		zap.Int("items_created", res.ItemsCreated),
		zap.Int("bundles_created", res.BundlesCreated),
	)

	availability, err := bundleService.AllAvailability(ctx)
	if err != nil {
		log.Fatal("Failed to compute availability", zap.Error(err))
	}
	for _, a := range availability {
		fmt.Printf("%-20s %-20s sellable=%d\n", a.Code, a.Name, a.MaxSellable)
	}
}
