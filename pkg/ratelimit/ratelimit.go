// Package ratelimit tracks OTP requests per identifier over a rolling
// window. The Redis limiter is authoritative across instances; the memory
// limiter is a single-instance fallback that resets on process restart.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter reports whether another request is allowed for the identifier.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

// ==================== REDIS ====================

type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow increments the identifier's counter, arming the window TTL on the
// first hit (fixed window, INCR+EXPIRE).
func (l *RedisLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	key := fmt.Sprintf("%s:%s", l.prefix, identifier)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr %s: %w", key, err)
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}

	return count <= int64(l.limit), nil
}

// ==================== IN-MEMORY ====================

type entry struct {
	count       int
	windowStart time.Time
}

type MemoryLimiter struct {
	mu     sync.Mutex
	seen   map[string]*entry
	limit  int
	window time.Duration
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		seen:   make(map[string]*entry),
		limit:  limit,
		window: window,
	}
}

// Allow counts against a fixed window anchored at the first request, the
// same semantics as the Redis limiter's first-hit EXPIRE.
func (l *MemoryLimiter) Allow(_ context.Context, identifier string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.seen[identifier]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.seen[identifier] = &entry{count: 1, windowStart: now}
		return true, nil
	}

	if e.count >= l.limit {
		return false, nil
	}

	e.count++
	return true, nil
}
