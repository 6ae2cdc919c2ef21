package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/config"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig carries the settings and collaborators of the HTTP engine.
type EngineConfig struct {
	Logger      *zap.Logger
	HTTP        config.HTTPConfig
	Tracing     middleware.TracingConfig
	Metrics     middleware.HTTPMetricsConfig
	Idempotency shared.IdempotencyStore
	Swagger     bool
}

// NewEngine builds the gin engine: the middleware chain, the probes and
// every API route.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	} else if err := engine.SetTrustedProxies(nil); err != nil {
		log.Warn("Failed to disable trusted proxies", zap.Error(err))
	}

	// Order matters: the request id must exist before logging and tracing,
	// and the span must be open before the annotators run.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(cfg.Metrics))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", h.Health.Health)
	engine.GET("/ready", h.Health.Ready)
	if cfg.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	idempotent := middleware.Idempotency(cfg.Idempotency, cfg.HTTP.IdempotencyTTL)
	r := NewRouter(engine)
	for _, g := range []*DomainGroup{
		BatchRoutes(h.Batch, idempotent),
		InventoryRoutes(h.Item, h.Bundle, idempotent),
	} {
		r.Register(g)
		log.Debug("Route group registered", zap.String("group", g.Name()), zap.Int("routes", len(g.Routes())))
	}
	r.Setup()

	return engine
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	cors.MaxAge = 12 * time.Hour
	return cors
}
