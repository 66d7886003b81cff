package cache

import (
	"context"
	"fmt"

	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/shared"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore picks the webhook idempotency store for the deployment.
// With Redis enabled a connection failure is fatal unless allowFallback is set,
// in which case the in-memory store is used and a warning is logged.
func NewIdempotencyStore(ctx context.Context, cfg config.RedisConfig, allowFallback bool, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Enabled {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(0), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg)
	if err == nil {
		logger.Info("using Redis idempotency store", zap.String("addr", cfg.RedisAddr()))
		return store, nil
	}
	if !allowFallback {
		return nil, fmt.Errorf("redis required for webhook idempotency but unavailable: %w", err)
	}

	logger.Warn("Redis unavailable, falling back to in-memory idempotency store; "+
		"duplicate webhook deliveries across instances will not be detected",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(0), nil
}
