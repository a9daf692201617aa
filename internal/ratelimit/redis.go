package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
)

const loginKeyPrefix = "login:attempts:%s"

// Fixed window: first INCR in a window arms the expiry, later ones ride it.
const fixedWindowScript = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`

type redisLimiter struct {
	client *redis.Client
	script *redis.Script
	limits WindowSource
}

func NewRedisLimiter(client *redis.Client, limits WindowSource) Limiter {
	return &redisLimiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
		limits: limits,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, errors.New("rate limiter key is empty")
	}

	maxAttempts, windowMillis := l.limits.LoginLimits()
	count, err := l.script.Run(
		ctx,
		l.client,
		[]string{fmt.Sprintf(loginKeyPrefix, key)},
		windowMillis,
	).Int64()
	if err != nil {
		return false, err
	}
	return count <= int64(maxAttempts), nil
}
