package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	forecastapp "github.com/preorder/backend/internal/application/forecast"
	inventoryapp "github.com/preorder/backend/internal/application/inventory"
	"github.com/preorder/backend/internal/infrastructure/cache"
	"github.com/preorder/backend/internal/infrastructure/config"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/infrastructure/persistence"
	"github.com/preorder/backend/internal/infrastructure/scheduler"
	"github.com/preorder/backend/internal/infrastructure/telemetry"
	"github.com/preorder/backend/internal/interfaces/http/handler"
	"github.com/preorder/backend/internal/interfaces/http/middleware"
	"github.com/preorder/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/preorder/backend/docs"
)

//	@title			Preorder Forecast API
//	@version		1.0
//	@description	Preorder batch forecasting and bundle inventory API.

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Telemetry providers. Disabled configs return no-op providers.
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogExportEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if lp.IsEnabled() {
		log = logger.Tee(log, telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, lp, logger.ParseLevel(cfg.Log.Level)))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Profiling.ApplicationName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsRunning() {
		tp.EnableSpanProfiles()
	}

	log.Info("Starting preorder backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBSystem:   dbSystem(cfg.Database.Driver),
	}, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	meter := mp.Meter("preorder-backend")
	if mp.IsEnabled() {
		if err := telemetry.RegisterDBPoolMetrics(meter, db.PoolStats); err != nil {
			log.Warn("Failed to register database pool metrics", zap.Error(err))
		}
	}

	// Repositories
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	scenarioRepo := persistence.NewGormScenarioRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	bundleRepo := persistence.NewGormBundleRepository(db.DB)
	txRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	batchService := forecastapp.NewBatchService(batchRepo, scenarioRepo)
	itemService := inventoryapp.NewItemService(itemRepo, txRepo, txScope)
	bundleService := inventoryapp.NewBundleService(bundleRepo, itemRepo)

	if mp.IsEnabled() {
		bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:    meter,
			Logger:   log,
			LowStock: itemService.CountLowStock,
		})
		if err != nil {
			log.Warn("Failed to create business metrics", zap.Error(err))
		} else {
			batchService.SetBusinessMetrics(bm)
			itemService.SetBusinessMetrics(bm)
			bundleService.SetBusinessMetrics(bm)
		}
	}

	// Low stock scan (if enabled)
	var (
		jobScheduler *scheduler.Scheduler
		jobTrigger   *scheduler.IntervalTrigger
	)
	if cfg.Scheduler.Enabled {
		jobScheduler, err = scheduler.NewScheduler(scheduler.SchedulerConfig{
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}, scheduler.NewLowStockExecutor(itemService, log), log)
		if err != nil {
			log.Fatal("Failed to create job scheduler", zap.Error(err))
		}
		if err := jobScheduler.Start(ctx); err != nil {
			log.Fatal("Failed to start job scheduler", zap.Error(err))
		}
		jobTrigger = scheduler.NewIntervalTrigger(cfg.Scheduler.LowStockInterval, jobScheduler, log, scheduler.JobKindLowStockScan)
		if err := jobTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start low stock trigger", zap.Error(err))
		}
	}

	store, err := cache.NewIdempotencyStore(ctx, cfg.Redis, cache.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	tracingCfg := middleware.DefaultTracingConfig()
	tracingCfg.ServiceName = cfg.Telemetry.ServiceName
	tracingCfg.Enabled = cfg.Telemetry.Enabled

	engine := router.NewEngine(router.EngineConfig{
		Logger:      log,
		HTTP:        cfg.HTTP,
		Tracing:     tracingCfg,
		Metrics:     middleware.HTTPMetricsConfig{MeterProvider: mp, Enabled: mp.IsEnabled()},
		Idempotency: store,
		Swagger:     cfg.App.Env != "production",
	}, router.Handlers{
		Batch:  handler.NewBatchHandler(batchService),
		Item:   handler.NewItemHandler(itemService),
		Bundle: handler.NewBundleHandler(bundleService),
		Health: handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if jobTrigger != nil {
		if err := jobTrigger.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping low stock trigger", zap.Error(err))
		}
		if err := jobScheduler.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping job scheduler", zap.Error(err))
		}
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing idempotency store", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := lp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func dbSystem(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
