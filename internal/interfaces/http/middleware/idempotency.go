package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader carries the client's retry key on create requests.
	IdempotencyKeyHeader = "Idempotency-Key"

	maxIdempotencyKeyLength = 255
	defaultIdempotencyTTL   = 24 * time.Hour
)

// Idempotency rejects a request whose Idempotency-Key was already used on
// the same method and path within ttl, answering 409 ERR_DUPLICATE_REQUEST.
// Requests without the header pass through. A key is released again when the
// handler fails (4xx/5xx) so the client can retry. Store errors fail open.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	if store == nil {
		return passThrough
	}
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key must be at most 255 characters", GetRequestID(c)))
			return
		}

		ctx := c.Request.Context()
		log := logger.L(ctx)
		scoped := c.Request.Method + " " + c.Request.URL.Path + " " + key

		isNew, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable, processing request without deduplication", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			log.Info("Duplicate request rejected", zap.String("idempotency_key", key))
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key has already been processed",
				GetRequestID(c),
			))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Forget(ctx, scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.Error(err))
			}
		}
	}
}
