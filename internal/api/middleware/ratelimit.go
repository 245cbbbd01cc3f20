package middleware

import (
	"net/http"
	"strconv"

	"github.com/haderrenteria13/ronald-barber/internal/api/handlers"
)

const msgTooManyRequests = "demasiadas solicitudes, intenta de nuevo en un minuto"

// RateLimitOptions параметры middleware лимитера
type RateLimitOptions struct {
	Route      string // метка маршрута для метрик и ключа счетчика
	RetryAfter int    // значение заголовка Retry-After в секундах, 0 - не отправлять

	// TrustedProxies адреса балансировщиков, чьим заголовкам X-Forwarded-For можно верить.
	// nil - заголовки игнорируются, ключом служит RemoteAddr.
	TrustedProxies *TrustedProxies
}

// RateLimit ограничивает количество запросов с одного IP.
// Ошибки хранилища счетчиков не блокируют запрос (fail-open).
func RateLimit(limiter Limiter, m RateLimitMetrics, opts RateLimitOptions, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r, opts.TrustedProxies)
			key := opts.Route + ":" + ip

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("%s %s - Rate limiter unavailable, request allowed: ip=%s, error=%v",
					r.Method, r.URL.Path, ip, err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				logger.Warn("%s %s - Rate limit exceeded: ip=%s, request_id=%s",
					r.Method, r.URL.Path, ip, GetRequestID(r.Context()))
				if m != nil {
					m.IncRateLimited(opts.Route)
				}
				if opts.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(opts.RetryAfter))
				}
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
