package middleware

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/1000bang/vacation-api-sub001/internal/shared/apperror"
	"github.com/1000bang/vacation-api-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterShards       = 16
	limiterIdleTTL      = 10 * time.Minute
	limiterSweepEvery   = 3 * time.Minute
	limiterSweepMinSize = 64
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
}

// KeyedRateLimiter is a sharded token-bucket map keyed by IP or user id.
// Idle keys are evicted so the map does not grow with every client ever
// seen.
type KeyedRateLimiter struct {
	shards [limiterShards]*limiterShard
	r      rate.Limit
	b      int
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	l := &KeyedRateLimiter{r: r, b: b}
	for i := range l.shards {
		l.shards[i] = &limiterShard{entries: make(map[string]*limiterEntry)}
	}
	go l.sweep()
	return l
}

func (l *KeyedRateLimiter) shardFor(key string) *limiterShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return l.shards[h.Sum32()%limiterShards]
}

func (l *KeyedRateLimiter) Get(key string) *rate.Limiter {
	shard := l.shardFor(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	entry, exists := shard.entries[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.r, l.b)}
		shard.entries[key] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

func (l *KeyedRateLimiter) sweep() {
	ticker := time.NewTicker(limiterSweepEvery)
	defer ticker.Stop()

	for range ticker.C {
		l.evictIdle(time.Now())
	}
}

func (l *KeyedRateLimiter) evictIdle(now time.Time) {
	for _, shard := range l.shards {
		shard.mu.Lock()
		if len(shard.entries) >= limiterSweepMinSize {
			for key, entry := range shard.entries {
				if now.Sub(entry.lastSeen) > limiterIdleTTL {
					delete(shard.entries, key)
				}
			}
		}
		shard.mu.Unlock()
	}
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Get(c.ClientIP()).Allow() {
			rejectThrottled(c)
			return
		}
		c.Next()
	}
}

func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !limiter.Get(userID).Allow() {
			rejectThrottled(c)
			return
		}
		c.Next()
	}
}

func rejectThrottled(c *gin.Context) {
	e := apperror.ErrTooManyRequests
	response.Error(c, e.HTTPStatus, e.Code, e.Message, nil)
	c.Abort()
}
