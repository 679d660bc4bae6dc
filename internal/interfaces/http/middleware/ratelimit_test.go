package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// drain calls Allow n times for key and counts how many passed
func drain(l *RateLimiter, key string, n int) int {
	passed := 0
	for range n {
		if l.Allow(key) {
			passed++
		}
	}
	return passed
}

func TestRateLimiter_Buckets(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		attempts int
		want     int
	}{
		{"under the burst", 5, 4, 4},
		{"exactly the burst", 3, 3, 3},
		{"over the burst", 3, 10, 3},
		{"zero limit allows one", 0, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewRateLimiter(tt.limit, time.Hour)
			assert.Equal(t, tt.want, drain(l, "198.51.100.7", tt.attempts))
		})
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	l := NewRateLimiter(2, time.Hour)

	assert.Equal(t, 2, drain(l, "checkout-a", 5))
	assert.Equal(t, 2, drain(l, "checkout-b", 5))
	assert.Zero(t, l.Remaining("checkout-a"))
	assert.Equal(t, 2, l.Remaining("never-seen"), "unknown keys have a full bucket")
}

func TestRateLimiter_Refills(t *testing.T) {
	l := NewRateLimiter(2, 100*time.Millisecond)
	assert.Equal(t, 2, drain(l, "cart", 3))

	assert.Eventually(t, func() bool { return l.Allow("cart") }, time.Second, 10*time.Millisecond)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	l := NewRateLimiter(50, time.Hour)
	var passed atomic.Int64
	var wg sync.WaitGroup
	for range 120 {
		wg.Go(func() {
			if l.Allow("shared") {
				passed.Add(1)
			}
		})
	}
	wg.Wait()
	assert.EqualValues(t, 50, passed.Load())
}

func TestRateLimit_RejectsWithEnvelope(t *testing.T) {
	router := newTestRouter(RequestID(), RateLimit(NewRateLimiter(1, time.Hour)))
	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		return w
	}

	first := get()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := get()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), `"code":"ERR_RATE_LIMITED"`)
	assert.Contains(t, second.Body.String(), second.Header().Get(RequestIDHeader))
}

func TestRateLimitByKey(t *testing.T) {
	router := newTestRouter(RateLimitByKey(NewRateLimiter(1, time.Hour), func(c *gin.Context) string {
		return c.GetHeader("X-Customer")
	}))
	status := func(customer string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Customer", customer)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusOK},
		[]int{status("17"), status("17"), status("18")})
}
