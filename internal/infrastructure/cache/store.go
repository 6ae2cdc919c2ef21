// Package cache holds the idempotency key stores: Redis when configured and
// reachable, a process-local map otherwise.
package cache

import (
	"context"
	"fmt"

	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type storeOptions struct {
	log          *zap.Logger
	requireRedis bool
}

type Option func(*storeOptions)

func WithLogger(log *zap.Logger) Option {
	return func(o *storeOptions) { o.log = log }
}

// RequireRedis turns an unreachable Redis into a startup error instead of a
// fallback to the in-memory store.
func RequireRedis() Option {
	return func(o *storeOptions) { o.requireRedis = true }
}

// NewIdempotencyStore opens the store described by cfg. Keys in the
// in-memory fallback are not shared between instances.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, opts ...Option) (shared.IdempotencyStore, error) {
	o := storeOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if !cfg.Enabled {
		o.log.Info("Redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := DialRedisIdempotencyStore(ctx, cfg.Addr(), cfg.Password, cfg.DB)
	switch {
	case err == nil:
		o.log.Info("Using Redis idempotency store", zap.String("addr", cfg.Addr()))
		return store, nil
	case o.requireRedis:
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}

	o.log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
	return NewInMemoryIdempotencyStore(), nil
}
