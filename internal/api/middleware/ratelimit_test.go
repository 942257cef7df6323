package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, rdb
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func doAs(h http.Handler, userID string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.Header.Set(HeaderUserID, userID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_FixedWindowPerUser(t *testing.T) {
	mr, rdb := newRedis(t)
	rl := NewRateLimiter(rdb, 2, time.Minute, "test", false, nopLogger{})
	h := Auth(rl.Middleware(okHandler()))

	assert.Equal(t, http.StatusCreated, doAs(h, "100"))
	assert.Equal(t, http.StatusCreated, doAs(h, "100"))
	assert.Equal(t, http.StatusTooManyRequests, doAs(h, "100"))

	// у другого пользователя свой счетчик
	assert.Equal(t, http.StatusCreated, doAs(h, "200"))

	ttl := mr.TTL("test:user:100")
	assert.True(t, ttl > 0 && ttl <= time.Minute, "ttl=%v", ttl)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, doAs(h, "100"))
}

func TestRateLimiter_FallsBackToIP(t *testing.T) {
	_, rdb := newRedis(t)
	rl := NewRateLimiter(rdb, 1, time.Minute, "test", false, nopLogger{})
	h := rl.Middleware(okHandler())

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestRateLimiter_RedisDown(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()

	closed := NewRateLimiter(rdb, 5, time.Minute, "test", false, nopLogger{})
	require.Equal(t, http.StatusServiceUnavailable, doAs(Auth(closed.Middleware(okHandler())), "100"))

	open := NewRateLimiter(rdb, 5, time.Minute, "test", true, nopLogger{})
	assert.Equal(t, http.StatusCreated, doAs(Auth(open.Middleware(okHandler())), "100"))
}
