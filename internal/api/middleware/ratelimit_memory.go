package middleware

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryLimiter лимитер в памяти процесса: token bucket на каждый ключ.
// Подходит для одного экземпляра сервиса; при нескольких используется RedisLimiter.
type MemoryLimiter struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	limit       rate.Limit
	burst       int
	idleTTL     time.Duration
	lastCleanup time.Time
	now         func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryLimiter создает лимитер на requests запросов за window
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
		idleTTL:  window,
		now:      time.Now,
	}
}

// Allow расходует один токен ключа key
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.cleanup(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1), nil
}

// cleanup удаляет ключи, не встречавшиеся дольше окна (их bucket уже полон)
func (l *MemoryLimiter) cleanup(now time.Time) {
	if now.Sub(l.lastCleanup) < l.idleTTL {
		return
	}
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.idleTTL {
			delete(l.visitors, key)
		}
	}
	l.lastCleanup = now
}
