package rate

import (
	"context"
	"time"

	"github.com/SocialApp/social-service/internal/repository/redisrepo"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

// RedisLimiter is a fixed-window counter on top of the cache: INCR the
// window key, set its TTL on first hit, reject once the count passes the
// limit. Counting in redis keeps the window shared across replicas.
type RedisLimiter struct {
	cache redisrepo.Default
}

func NewRedis(cache redisrepo.Default) *RedisLimiter {
	return &RedisLimiter{cache: cache}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	count, err := l.cache.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := l.cache.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}

	return count <= limit, nil
}
