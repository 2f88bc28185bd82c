package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "leadhub:ratelimit"

// RedisRateLimiter keeps one sorted set of hit timestamps per key and window.
type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, now: time.Now}
}

// Allow records a hit for key in every enabled window and reports whether
// each window was under its limit beforehand. Denied hits count as well, so
// a client hammering the endpoint stays blocked.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limits Limits) (bool, error) {
	ws := limits.windows()
	if len(ws) == 0 {
		return true, nil
	}

	now := l.now()
	hit := redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()}
	before := make([]*redis.IntCmd, len(ws))

	// One MULTI/EXEC for all windows so concurrent instances cannot
	// interleave between the count and the insert.
	_, err := l.client.TxPipelined(ctx, func(tx redis.Pipeliner) error {
		for i, w := range ws {
			setKey := windowKey(key, w.span)
			cutoff := strconv.FormatInt(now.Add(-w.span).UnixNano(), 10)

			tx.ZRemRangeByScore(ctx, setKey, "-inf", cutoff)
			before[i] = tx.ZCard(ctx, setKey)
			tx.ZAdd(ctx, setKey, hit)
			tx.Expire(ctx, setKey, w.span+time.Minute)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit check for %q failed: %w", key, err)
	}

	for i, w := range ws {
		if before[i].Val() >= int64(w.limit) {
			return false, nil
		}
	}
	return true, nil
}

func windowKey(key string, span time.Duration) string {
	return keyPrefix + ":" + key + ":" + span.String()
}
