package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// SkipPaths are served without a span.
	SkipPaths []string
}

// DefaultTracingConfig leaves the probes untraced.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "preorder-backend",
		Enabled:     true,
		SkipPaths:   []string{"/health", "/ready"},
	}
}

// TracingWithConfig opens one otelgin server span per request, named after
// the matched route. TracingAttributeInjector and SpanErrorMarker annotate
// it and must come after.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	skipPaths := slices.Clone(cfg.SkipPaths)
	traced := func(r *http.Request) bool {
		return !slices.Contains(skipPaths, r.URL.Path)
	}
	return otelgin.Middleware(cfg.ServiceName, otelgin.WithFilter(traced))
}

// TracingAttributeInjector copies the request id onto the span. It needs
// RequestID to have run.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		if span := trace.SpanFromContext(c.Request.Context()); span.IsRecording() {
			if id := GetRequestID(c); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
		}
		c.Next()
	}
}

// SpanErrorMarker sets an error status on the span of any 4xx or 5xx answer
// and attaches the gin errors the handler recorded.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		status := c.Writer.Status()
		if !span.IsRecording() || status < http.StatusBadRequest {
			return
		}

		desc := http.StatusText(status)
		if status >= http.StatusInternalServerError {
			desc = http.StatusText(http.StatusInternalServerError)
		}
		span.SetStatus(codes.Error, desc)
		if len(c.Errors) > 0 {
			span.SetAttributes(attribute.String("error.message", c.Errors.String()))
		}
	}
}
