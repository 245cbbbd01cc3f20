package middleware

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// RateLimitMetrics метрики отклоненных лимитером запросов
type RateLimitMetrics interface {
	IncRateLimited(route string)
}

// Limiter решает, можно ли пропустить очередной запрос с ключом key.
// Ошибка означает недоступность хранилища счетчиков.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
