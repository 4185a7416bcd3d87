package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"freightdesk/internal/cache"
)

const redisKeyPrefix = "ratelimit:"

// RedisLimiter is a fixed-window counter backed by Redis, for deployments
// with more than one instance. It fails open: if Redis is unreachable the
// request is allowed, matching the fail-safe posture of the cache wrapper.
type RedisLimiter struct {
	cache  *cache.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRedisLimiter creates a Redis-backed limiter allowing limit requests per
// key per window.
func NewRedisLimiter(c *cache.Client, limit int, window time.Duration, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{cache: c, limit: limit, window: window, logger: logger}
}

// Allow increments the window counter for key and reports whether it is
// within the limit. The TTL is set on the first hit, so the window resets at
// a fixed boundary rather than sliding.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := redisKeyPrefix + key
	n, err := l.cache.Incr(ctx, redisKey)
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request",
			zap.String("key", key), zap.Error(err))
		return true
	}
	if n == 1 {
		_ = l.cache.Expire(ctx, redisKey, l.window)
	}
	return n <= int64(l.limit)
}
