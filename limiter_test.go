package pubindex

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(max int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewRateLimiter(max, window)
	l.now = clock.now
	return l, clock
}

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)
	ip := "203.0.113.10"

	if !l.Allow(ip) || !l.Allow(ip) {
		t.Fatal("expected the first two requests to be allowed")
	}
	if l.Allow(ip) {
		t.Fatal("expected the third request to be blocked")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)
	ip := "203.0.113.20"

	if !l.Allow(ip) {
		t.Fatal("expected first request to be allowed")
	}
	if l.Allow(ip) {
		t.Fatal("expected second request to be blocked")
	}
	clock.t = clock.t.Add(61 * time.Second)
	if !l.Allow(ip) {
		t.Fatal("expected request after the window to be allowed")
	}
}

func TestRateLimiterIsPerIP(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	if !l.Allow("203.0.113.1") {
		t.Fatal("expected first IP to be allowed")
	}
	if !l.Allow("203.0.113.2") {
		t.Fatal("expected second IP to be allowed")
	}
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)
	l.Allow("203.0.113.1")
	clock.t = clock.t.Add(2 * time.Minute)
	l.Allow("203.0.113.2")

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.hits["203.0.113.1"]; ok {
		t.Error("idle client should have been swept")
	}
}

func TestTagIndexAPIRateLimited(t *testing.T) {
	a := newTestApp(t, SiteConfig{APIRateLimit: 2}, numberedPosts(1))
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		req.RemoteAddr = "198.51.100.7:1234"
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}
}
