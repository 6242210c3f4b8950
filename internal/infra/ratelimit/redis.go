package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Значения по умолчанию для окна ограничения
const (
	DefaultLimit  = 5
	DefaultWindow = time.Minute
	DefaultPrefix = "guest-booking"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisLimiter ограничитель с фиксированным окном в Redis
// Счетчик общий для всех экземпляров сервиса
type RedisLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter создает ограничитель: не больше limit попыток за window на ключ
func NewRedisLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Allow увеличивает счетчик ключа и сообщает, укладывается ли попытка в лимит
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.incr(ctx, l.prefix+":"+key)
	if err != nil {
		return false, err
	}
	return count <= int64(l.limit), nil
}

func (l *RedisLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRedis, err)
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnexpectedResult, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnexpectedResult, res)
	}
}
