package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter ограничитель в памяти процесса (token bucket на ключ)
// Используется, когда Redis отключен, и как запасной вариант при его недоступности
type MemoryLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter создает ограничитель: limit попыток за window с таким же запасом
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		idleTTL:  window,
		now:      time.Now,
	}
}

// Allow сообщает, разрешена ли попытка для ключа
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return l.limiter(key).Allow(), nil
}

func (l *MemoryLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep удаляет ключи, простаивавшие дольше окна: их корзина уже полна
func (l *MemoryLimiter) sweep(now time.Time) {
	cutoff := now.Add(-l.idleTTL)
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}
