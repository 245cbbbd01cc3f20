package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haderrenteria13/ronald-barber/pkg/logger"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAdminAuth(t *testing.T) {
	var gotID string
	h := AdminAuth(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetAdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("header present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments", nil)
		req.Header.Set(AdminIDHeader, " ronald ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ronald", gotID)
	})
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, fromCtx)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", fromCtx)
}

type observed struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct {
	calls []observed
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method: method, route: route, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/api/v1/services/{serviceId}/available-slots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services/42/available-slots", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{
		method: http.MethodGet,
		route:  "/api/v1/services/{serviceId}/available-slots",
		status: http.StatusTeapot,
	}, m.calls[0])
}

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

type fakeRateLimitMetrics struct {
	routes []string
}

func (f *fakeRateLimitMetrics) IncRateLimited(route string) {
	f.routes = append(f.routes, route)
}

func TestRateLimit(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	opts := RateLimitOptions{Route: "bookings", RetryAfter: 60, TrustedProxies: trusted}

	t.Run("rejected", func(t *testing.T) {
		limiter := &fakeLimiter{allowed: false}
		m := &fakeRateLimitMetrics{}
		h := RateLimit(limiter, m, opts, logger.NewNop())(http.HandlerFunc(okHandler))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = "10.0.0.2:41000"
		req.Header.Set("X-Forwarded-For", "190.0.0.1, 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		assert.Equal(t, []string{"bookings:190.0.0.1"}, limiter.keys)
		assert.Equal(t, []string{"bookings"}, m.routes)
	})

	t.Run("store error fails open", func(t *testing.T) {
		limiter := &fakeLimiter{err: errors.New("redis down")}
		h := RateLimit(limiter, nil, opts, logger.NewNop())(http.HandlerFunc(okHandler))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "127.0.0.1"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		remote    string
		forwarded string
		realIP    string
		trusted   *TrustedProxies
		want      string
	}{
		{
			name:   "direct connection",
			remote: "181.50.0.9:5555",
			want:   "181.50.0.9",
		},
		{
			name:      "headers ignored without trusted proxies",
			remote:    "181.50.0.9:5555",
			forwarded: "1.2.3.4",
			realIP:    "5.6.7.8",
			want:      "181.50.0.9",
		},
		{
			name:      "headers from untrusted peer are ignored",
			remote:    "181.50.0.9:5555",
			forwarded: "1.2.3.4",
			trusted:   trusted,
			want:      "181.50.0.9",
		},
		{
			name:      "right-most untrusted hop",
			remote:    "10.1.2.3:5555",
			forwarded: "1.2.3.4, 190.0.0.1, 10.0.0.7",
			trusted:   trusted,
			want:      "190.0.0.1",
		},
		{
			name:      "spoofed left-most entry does not change the key",
			remote:    "127.0.0.1:5555",
			forwarded: "9.9.9.9, 190.0.0.1",
			trusted:   trusted,
			want:      "190.0.0.1",
		},
		{
			name:    "real ip from trusted proxy",
			remote:  "10.1.2.3:5555",
			realIP:  "181.50.0.9",
			trusted: trusted,
			want:    "181.50.0.9",
		},
		{
			name:      "garbage hop stops the walk",
			remote:    "10.1.2.3:5555",
			forwarded: "190.0.0.1, not-an-ip",
			trusted:   trusted,
			want:      "10.1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, ClientIP(req, tt.trusted))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	tp, err := ParseTrustedProxies([]string{"192.168.0.0/16", " 127.0.0.1 ", "::1"})
	require.NoError(t, err)

	assert.True(t, tp.Contains("192.168.4.20"))
	assert.True(t, tp.Contains("127.0.0.1"))
	assert.True(t, tp.Contains("::1"))
	assert.False(t, tp.Contains("127.0.0.2"))
	assert.False(t, tp.Contains("not-an-ip"))

	_, err = ParseTrustedProxies([]string{"10.0.0.0/33"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"localhost"})
	assert.Error(t, err)

	var none *TrustedProxies
	assert.False(t, none.Contains("127.0.0.1"))
}

func TestMemoryLimiter_ThreePerMinute(t *testing.T) {
	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(3, time.Minute)
	l.now = func() time.Time { return clock }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "1.1.1.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
	}

	ok, _ := l.Allow(ctx, "1.1.1.1")
	assert.False(t, ok)

	// другой IP считается отдельно
	ok, _ = l.Allow(ctx, "2.2.2.2")
	assert.True(t, ok)

	// за 20 секунд восстанавливается один токен
	clock = clock.Add(20 * time.Second)
	ok, _ = l.Allow(ctx, "1.1.1.1")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "1.1.1.1")
	assert.False(t, ok)
}

func TestMemoryLimiter_CleanupIdleKeys(t *testing.T) {
	clock := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(3, time.Minute)
	l.now = func() time.Time { return clock }

	_, _ = l.Allow(context.Background(), "1.1.1.1")
	clock = clock.Add(2 * time.Minute)
	_, _ = l.Allow(context.Background(), "2.2.2.2")

	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "2.2.2.2")
}

type fakeScripter struct {
	counts map[string]int64
	err    error
}

func (f *fakeScripter) run(keys []string) *redis.Cmd {
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	f.counts[keys[0]]++
	return redis.NewCmdResult(f.counts[keys[0]], nil)
}

func (f *fakeScripter) Eval(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalSha(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalRO(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) EvalShaRO(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return f.run(keys)
}

func (f *fakeScripter) ScriptExists(context.Context, ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult([]bool{true}, nil)
}

func (f *fakeScripter) ScriptLoad(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func TestRedisLimiter(t *testing.T) {
	scripter := &fakeScripter{counts: map[string]int64{}}
	l := NewRedisLimiter(scripter, 3, time.Minute, "rl")

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "bookings:1.1.1.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "bookings:1.1.1.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(4), scripter.counts["rl:bookings:1.1.1.1"])

	_, err = NewRedisLimiter(&fakeScripter{err: errors.New("dial tcp: refused")}, 3, time.Minute, "").
		Allow(ctx, "bookings:1.1.1.1")
	assert.Error(t, err)
}

func TestScriptCount(t *testing.T) {
	n, err := scriptCount(int64(2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = scriptCount("5")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	_, err = scriptCount([]byte("x"))
	assert.Error(t, err)
}
