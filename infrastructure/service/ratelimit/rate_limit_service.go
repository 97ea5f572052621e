// Package ratelimit throttles repeated login attempts per client IP with a
// fixed window counter in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/horolog/horolog/infrastructure/service/logger"
)

// Limiter answers whether a key may perform another attempt inside the
// current window. Allow also counts the attempt.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config for the Redis-backed limiter.
type Config struct {
	Enabled  bool
	RedisURL string
	Attempts int
	Window   time.Duration
}

type redisLimiter struct {
	client   *redis.Client
	log      logger.Logger
	attempts int
	window   time.Duration
}

// NewLimiter connects to Redis and returns the limiter, or a no-op limiter
// when rate limiting is disabled.
func NewLimiter(cfg Config, log logger.Logger) (Limiter, error) {
	if !cfg.Enabled {
		log.Info(context.Background(), "rate limiting disabled", nil)
		return noopLimiter{}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info(context.Background(), "rate limiting initialized", map[string]interface{}{
		"attempts": cfg.Attempts,
		"window":   cfg.Window.String(),
	})
	return &redisLimiter{client: client, log: log, attempts: cfg.Attempts, window: cfg.Window}, nil
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	// Expire only takes effect on a fresh key; an existing window keeps its
	// original deadline.
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count attempt: %w", err)
	}

	count := incr.Val()
	if count > int64(l.attempts) {
		l.log.Warn(ctx, "rate limit exceeded", map[string]interface{}{
			"key":   key,
			"count": count,
			"limit": l.attempts,
		})
		return false, nil
	}
	return true, nil
}

type noopLimiter struct{}

func (noopLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}
