package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/dovewell/wellness-server/internal/config"
)

// LoginLimiter throttles repeated login attempts for one identity.
type LoginLimiter interface {
	Enforce(ctx context.Context, username, ip string) error
}

// RedisLoginLimiter counts attempts per username and per source IP in redis.
// A redis outage fails open: login availability beats throttling.
type RedisLoginLimiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
}

var _ LoginLimiter = (*RedisLoginLimiter)(nil)

func NewRedisLoginLimiter(redisClient *redis.Client, cfg config.AuthConfig) *RedisLoginLimiter {
	return &RedisLoginLimiter{
		redis:       redisClient,
		maxAttempts: cfg.GetLoginMaxAttempts(),
		window:      cfg.GetLoginAttemptWindow(),
	}
}

func (l *RedisLoginLimiter) Enforce(ctx context.Context, username, ip string) error {
	if err := l.enforceKey(ctx, "login:user:"+username); err != nil {
		return err
	}
	if ip != "" {
		if err := l.enforceKey(ctx, "login:ip:"+ip); err != nil {
			return err
		}
	}
	return nil
}

func (l *RedisLoginLimiter) enforceKey(ctx context.Context, key string) error {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Msg("login limiter: redis unavailable, failing open")
		return nil
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			log.Warn().Err(err).Msg("login limiter: redis unavailable, failing open")
			return nil
		}
	}

	if count > int64(l.maxAttempts) {
		return ErrRateLimited
	}
	return nil
}
