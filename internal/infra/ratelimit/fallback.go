package ratelimit

import "context"

// Limiter общий контракт ограничителей
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// FallbackLimiter спрашивает primary, а при его ошибке переходит на fallback
type FallbackLimiter struct {
	primary  Limiter
	fallback Limiter
	logger   Logger
}

// NewFallbackLimiter создает ограничитель с запасным вариантом
func NewFallbackLimiter(primary, fallback Limiter, logger Logger) *FallbackLimiter {
	return &FallbackLimiter{primary: primary, fallback: fallback, logger: logger}
}

// Allow сообщает, разрешена ли попытка для ключа
func (l *FallbackLimiter) Allow(ctx context.Context, key string) (bool, error) {
	allowed, err := l.primary.Allow(ctx, key)
	if err == nil {
		return allowed, nil
	}

	l.logger.Warn("RateLimit: primary limiter failed, using fallback: %v", err)
	return l.fallback.Allow(ctx, key)
}
