package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Pinger checks a backing dependency.
type Pinger interface {
	Ping() error
}

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	BaseHandler
	db Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
//
//	@Summary	Liveness probe
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready godoc
//
//	@Summary	Readiness probe, pings the database
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Failure	503	{object}	dto.Response
//	@Router		/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Readiness check failed", zap.Error(err))
		h.ServiceUnavailable(c, "Database unavailable")
		return
	}
	h.Success(c, gin.H{"status": "ready", "database": "ok"})
}
