package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, rate int) (*rateLimiter, *time.Time) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	now := time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)
	rl := newRateLimiter(ctx, rate, time.Minute)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, now := newTestLimiter(t, 2)

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))

	// Other clients have their own budget.
	assert.True(t, rl.allow("10.0.0.2"))

	*now = now.Add(61 * time.Second)
	assert.True(t, rl.allow("10.0.0.1"))
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl, now := newTestLimiter(t, 5)
	rl.allow("10.0.0.1")

	*now = now.Add(90 * time.Second)
	rl.allow("10.0.0.2")
	rl.sweep()
	assert.Len(t, rl.visitors, 2)

	*now = now.Add(60 * time.Second)
	rl.sweep()
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiter_MiddlewareIgnoresPort(t *testing.T) {
	rl, _ := newTestLimiter(t, 1)
	handler := rl.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i, port := range []string{"1111", "2222"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:" + port
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if i == 0 {
			assert.Equal(t, http.StatusNoContent, rec.Code)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		}
	}
}
