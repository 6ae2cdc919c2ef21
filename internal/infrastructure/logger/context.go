package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type (
	loggerCtxKey    struct{}
	requestIDCtxKey struct{}
)

var nop = zap.NewNop()

// WithContext attaches log to ctx for FromContext and L.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, log)
}

// FromContext never returns nil; without an attached logger it is a no-op.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerCtxKey{}).(*zap.Logger); ok && log != nil {
		return log
	}
	return nop
}

// WithRequestID records id on ctx and attaches a copy of log carrying a
// request_id field. The enriched logger is returned as well.
func WithRequestID(ctx context.Context, log *zap.Logger, id string) (context.Context, *zap.Logger) {
	log = log.With(zap.String("request_id", id))
	ctx = context.WithValue(ctx, requestIDCtxKey{}, id)
	return WithContext(ctx, log), log
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

func GetTraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}

// WithTraceContext tags log with the trace_id and span_id of the span on ctx.
func WithTraceContext(ctx context.Context, log *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return log
	}
	return log.With(zap.Stringer("trace_id", sc.TraceID()), zap.Stringer("span_id", sc.SpanID()))
}

// L is the logger services use: the request logger from ctx with trace ids.
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}
