package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a fixed-window limiter shared by every server instance. The
// first INCR in a window sets the key's expiry.
type Redis struct {
	client *redis.Client
	prefix string
	limit  int
	period time.Duration
}

func NewRedis(client *redis.Client, prefix string, limit int, period time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, limit: limit, period: period}
}

func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	k := r.prefix + ":" + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, r.period)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", k, err)
	}

	retryAfter := ttl.Val()
	if retryAfter < 0 {
		retryAfter = r.period
	}
	return result(int(incr.Val()), r.limit, retryAfter), nil
}
