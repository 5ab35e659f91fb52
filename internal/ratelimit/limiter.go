// Package ratelimit implements a fixed-window request counter in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter allows at most limit hits per key in each window.
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewLimiter builds a limiter whose keys are namespaced by prefix.
func NewLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, prefix: prefix, limit: limit, window: window}
}

// hitScript increments the counter and sets the window TTL in one atomic
// step. The TTL is only set when the key has none, so the window does not
// slide with traffic. Returns {count, pttl_ms}.
var hitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Allow records a hit for key.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := l.prefix + ":" + key

	res, err := hitScript.Run(ctx, l.client, []string{redisKey}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{Allowed: true}, err
	}
	if len(res) != 2 {
		return Decision{Allowed: true}, fmt.Errorf("ratelimit: unexpected script reply %v", res)
	}
	count, ttl := res[0], time.Duration(res[1])*time.Millisecond

	if int(count) > l.limit {
		return Decision{Allowed: false, Remaining: 0, RetryAfter: ttl}, nil
	}
	return Decision{Allowed: true, Remaining: l.limit - int(count), RetryAfter: ttl}, nil
}
