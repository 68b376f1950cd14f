package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter bounds how often a key may pass within a window.
type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) bool
	Close()
}

type redisRateLimiter struct {
	client  *redis.Client
	logger  *zap.Logger
	prefix  string
	timeout time.Duration
}

// NewRedisRateLimiter constructs a Redis backed rate limiter. Redis errors
// fail open.
func NewRedisRateLimiter(client *redis.Client, logger *zap.Logger) RateLimiter {
	return &redisRateLimiter{
		client:  client,
		logger:  logger,
		prefix:  "productivity:ratelimit:",
		timeout: 250 * time.Millisecond,
	}
}

func (rl *redisRateLimiter) Allow(key string, limit int, window time.Duration) bool {
	if limit <= 0 {
		return true
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key
	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.logRedisError("incr", err)
		return true
	}
	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, window).Err(); err != nil {
			rl.logRedisError("expire", err)
		}
	}
	return int(counter) <= limit
}

func (rl *redisRateLimiter) Close() {}

func (rl *redisRateLimiter) logRedisError(op string, err error) {
	if rl.logger == nil {
		return
	}
	rl.logger.Warn("redis rate limiter error", zap.String("op", op), zap.Error(err))
}

type memoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]rateState
}

type rateState struct {
	count     int
	windowEnd time.Time
}

// NewMemoryRateLimiter returns an in-process limiter for setups without
// Redis.
func NewMemoryRateLimiter() RateLimiter {
	return &memoryRateLimiter{entries: make(map[string]rateState)}
}

func (rl *memoryRateLimiter) Allow(key string, limit int, window time.Duration) bool {
	if limit <= 0 {
		return true
	}
	if window <= 0 {
		window = time.Minute
	}
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.entries[key]
	if !ok || now.After(state.windowEnd) {
		rl.entries[key] = rateState{count: 1, windowEnd: now.Add(window)}
		return true
	}
	if state.count >= limit {
		return false
	}
	state.count++
	rl.entries[key] = state
	return true
}

func (rl *memoryRateLimiter) Close() {}

func rateLimitMiddleware(limiter RateLimiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil || limit <= 0 {
			return c.Next()
		}
		if !limiter.Allow("ip:"+c.IP(), limit, window) {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		}
		return c.Next()
	}
}
