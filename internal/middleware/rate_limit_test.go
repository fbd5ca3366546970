package middleware

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestKeyedRateLimiter_SameKeySameBucket(t *testing.T) {
	l := NewKeyedRateLimiter(rate.Limit(1), 2)

	a := l.Get("10.0.0.1")
	b := l.Get("10.0.0.1")
	other := l.Get("10.0.0.2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestKeyedRateLimiter_BurstExhaustion(t *testing.T) {
	l := NewKeyedRateLimiter(rate.Limit(0.001), 2)

	limiter := l.Get("10.0.0.1")
	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())

	// Another key has its own untouched bucket.
	assert.True(t, l.Get("10.0.0.2").Allow())
}

func TestKeyedRateLimiter_EvictIdle(t *testing.T) {
	l := NewKeyedRateLimiter(rate.Limit(1), 1)

	for i := 0; i < 2048; i++ {
		l.Get(fmt.Sprintf("198.51.100.%d", i))
	}

	stale := time.Now().Add(-2 * limiterIdleTTL)
	for _, shard := range l.shards {
		shard.mu.Lock()
		for _, entry := range shard.entries {
			entry.lastSeen = stale
		}
		shard.mu.Unlock()
	}

	l.evictIdle(time.Now())

	total := 0
	for _, shard := range l.shards {
		shard.mu.Lock()
		total += len(shard.entries)
		shard.mu.Unlock()
	}
	// Every shard over the sweep threshold drops its idle keys; with
	// 2048 keys across 16 shards each one is comfortably over it.
	assert.Zero(t, total)
}

func TestKeyedRateLimiter_SmallShardsAreLeftAlone(t *testing.T) {
	l := NewKeyedRateLimiter(rate.Limit(1), 1)

	l.Get("203.0.113.7")

	stale := time.Now().Add(-2 * limiterIdleTTL)
	for _, shard := range l.shards {
		shard.mu.Lock()
		for _, entry := range shard.entries {
			entry.lastSeen = stale
		}
		shard.mu.Unlock()
	}

	l.evictIdle(time.Now())

	// Below the threshold the sweep skips the shard, so the limiter
	// state survives for a client that comes right back.
	total := 0
	for _, shard := range l.shards {
		shard.mu.Lock()
		total += len(shard.entries)
		shard.mu.Unlock()
	}
	assert.Equal(t, 1, total)
}
