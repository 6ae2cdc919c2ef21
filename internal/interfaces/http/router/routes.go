package router

import (
	"github.com/gin-gonic/gin"
	"github.com/preorder/backend/internal/interfaces/http/handler"
)

// Handlers groups the handlers mounted by the API.
type Handlers struct {
	Batch  *handler.BatchHandler
	Item   *handler.ItemHandler
	Bundle *handler.BundleHandler
	Health *handler.HealthHandler
}

// BatchRoutes mounts the forecast endpoints under /batches. idempotent
// guards the create routes.
func BatchRoutes(h *handler.BatchHandler, idempotent gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("batches", "/batches")
	g.POST("/", idempotent, h.Create).
		GET("/", h.List).
		GET("/:id", h.GetByID).
		DELETE("/:id", h.Delete).
		POST("/:id/scenario", idempotent, h.CreateScenario).
		GET("/:id/scenarios", h.ListScenarios).
		POST("/:id/series", h.Series).
		POST("/:id/forecast_curve", h.ForecastCurve)
	return g
}

// InventoryRoutes mounts items, bundles and availability under /inventory.
func InventoryRoutes(items *handler.ItemHandler, bundles *handler.BundleHandler, idempotent gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("inventory", "/inventory")

	g.Group("items", "/items").
		POST("", idempotent, items.Create).
		GET("", items.List).
		GET("/low-stock", items.LowStock).
		GET("/:id", items.GetByID).
		PUT("/:id", items.Update).
		DELETE("/:id", items.Delete).
		POST("/:id/adjust", idempotent, items.Adjust).
		GET("/:id/transactions", items.Transactions)

	g.Group("bundles", "/bundles").
		POST("", idempotent, bundles.Create).
		GET("", bundles.List).
		GET("/:id", bundles.GetByID).
		DELETE("/:id", bundles.Delete).
		GET("/:id/availability", bundles.Availability)

	g.GET("/availability", bundles.AllAvailability)
	return g
}
