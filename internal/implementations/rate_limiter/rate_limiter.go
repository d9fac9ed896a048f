package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"time"

	"github.com/go-redis/redis/v9"
)

// Redis counts calls per key in fixed windows. Redis failures never block a command.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
	now         func() time.Time
}

func NewRedis(redisClient *redis.Client, log logging.Logger, now func() time.Time) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Redis{redisClient: redisClient, log: log, now: now}
}

func (r *Redis) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	k, err := windowKey(key, limit.Interval, r.now())
	if err != nil {
		r.log.Error(ctx, "Invalid rate limit interval.", logging.Entry("key", key), logging.Entry("err", err))
		return ratelimiter.Allowed()
	}

	cmds, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, limit.Interval.Duration())
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return ratelimiter.NotAllowed()
	}
	if err != nil {
		logging.Error(ctx, r.log, err, logging.Entry("key", k))
		return ratelimiter.Allowed()
	}
	intCmd := cmds[0].(*redis.IntCmd)
	if intCmd.Val() > int64(limit.Value) {
		return ratelimiter.NotAllowed()
	}
	return ratelimiter.Allowed()
}

func windowKey(key string, interval ratelimiter.Interval, now time.Time) (string, error) {
	switch interval {
	case ratelimiter.Hour:
		return fmt.Sprintf("remindbot::%s::h%d", key, now.Hour()), nil
	case ratelimiter.Minute:
		return fmt.Sprintf("remindbot::%s::m%d", key, now.Minute()), nil
	}
	return "", fmt.Errorf("unsupported interval %v", interval.Duration())
}

// AllowAlways is used when no Redis instance is configured.
type AllowAlways struct{}

func NewAllowAlways() *AllowAlways {
	return &AllowAlways{}
}

func (AllowAlways) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	return ratelimiter.Allowed()
}
