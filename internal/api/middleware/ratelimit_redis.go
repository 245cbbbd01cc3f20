package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter лимитер с фиксированным окном, счетчики хранятся в Redis.
// Используется, когда запущено несколько экземпляров сервиса.
type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewRedisLimiter создает лимитер на limit запросов за window
func NewRedisLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Allow увеличивает счетчик окна и сравнивает его с лимитом
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("redis limiter: %w", err)
	}

	count, err := scriptCount(res)
	if err != nil {
		return false, err
	}

	return count <= int64(l.limit), nil
}

func scriptCount(res interface{}) (int64, error) {
	switch v := res.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("redis limiter: parse counter: %w", err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("redis limiter: unexpected script result type %T", res)
	}
}
