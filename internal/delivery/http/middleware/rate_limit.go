package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"go-wellness-backend/internal/delivery/http/response"
	"go-wellness-backend/pkg/logger"
	"go-wellness-backend/pkg/redis"
)

// RateLimitDecision is the outcome of one atomic token consume.
type RateLimitDecision struct {
	Success   bool
	Limit     int
	Remaining int
	Reset     int64 // epoch ms when the window reopens
}

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for the counter store
	KeyPrefix string
	// Custom key extractor (default: forwarded-for derived client IP)
	KeyFunc func(*gin.Context) string
	// Counter store override; nil uses Redis with in-memory fallback
	store counterStore
}

// ContactRateLimitConfig returns the strict config for the public contact
// endpoint. The defaults allow 5 submissions per 10 minutes per client.
func ContactRateLimitConfig(limit, windowSeconds int) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    time.Duration(windowSeconds) * time.Second,
		KeyPrefix: "rl:contact:",
		KeyFunc:   ClientKey,
	}
}

// ClientKey derives the rate-limit key: first forwarded-for hop, then the
// real-ip header, then a loopback placeholder. Never empty.
func ClientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return "127.0.0.1"
}

// counterStore performs one atomic increment-and-inspect per call, so two
// concurrent requests for the last token cannot both be admitted.
type counterStore interface {
	Consume(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// Lua script for atomic increment with TTL set on first increment.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type redisStore struct {
	client *goredis.Client
}

func (s *redisStore) Consume(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	result, err := s.client.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, 0, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	return count, time.Duration(ttl) * time.Second, nil
}

// memoryStore is the per-process fallback when Redis is unavailable.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]*memoryEntry)}
}

func (s *memoryStore) Consume(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &memoryEntry{resetAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++

	// Opportunistic cleanup of expired windows
	if len(s.entries) > 1024 {
		for k, e := range s.entries {
			if now.After(e.resetAt) {
				delete(s.entries, k)
			}
		}
	}

	return entry.count, entry.resetAt.Sub(now), nil
}

var fallbackStore = newMemoryStore()

// RateLimit enforces a fixed window per client key. Both admitted and
// rejected requests carry the X-RateLimit header triplet.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.KeyPrefix + config.KeyFunc(c)

		decision := consume(c.Request.Context(), key, config)

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset, 10))

		if !decision.Success {
			retryAfter := int((decision.Reset - time.Now().UnixMilli()) / 1000)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.L().Warn("rate limit exceeded",
				"key", key,
				"path", c.FullPath(),
				"limit", decision.Limit,
			)

			response.RateLimited(c, "Too many requests. Please try again later.", retryAfter)
			c.Abort()
			return
		}

		c.Next()
	}
}

// consume runs one atomic token consume against Redis when available,
// falling back to the per-process store otherwise.
func consume(ctx context.Context, key string, config RateLimitConfig) RateLimitDecision {
	store := config.store
	if store == nil {
		if client := redis.Client(); client != nil {
			store = &redisStore{client: client}
		} else {
			store = fallbackStore
		}
	}

	count, ttl, err := store.Consume(ctx, key, config.Window)
	if err != nil {
		logger.L().Warn("rate limit store unavailable, using in-memory fallback", "error", err)
		count, ttl, _ = fallbackStore.Consume(ctx, key, config.Window)
	}

	remaining := config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitDecision{
		Success:   count <= int64(config.Limit),
		Limit:     config.Limit,
		Remaining: remaining,
		Reset:     time.Now().Add(ttl).UnixMilli(),
	}
}
