package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inekruz/MoneyNote/internal/adapter/http/middleware"
)

func TestRateLimiterAllowExhaustsBucket(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Hour)
	defer limiter.Stop()

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first request must pass")
	}
	if !limiter.Allow("10.0.0.1") {
		t.Fatal("second request must pass")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("third request must be denied")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("a different client must have its own bucket")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Hour)
	defer limiter.Stop()

	handler := middleware.RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/credit/check", nil)
	req.RemoteAddr = "10.0.0.1:54321"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
}
