package identity

import "context"

// RateLimiter ограничитель попыток гостевых бронирований
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
