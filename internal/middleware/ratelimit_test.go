package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newRateLimitedHandler(t *testing.T, cfg RateLimitConfig) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	handler := RateLimitMiddleware(client, cfg, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return handler, mr
}

func TestProperty_RateLimitBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests beyond the window limit get 429", prop.ForAll(
		func(requestsPerWindow int, excessRequests int) bool {
			handler, _ := newRateLimitedHandler(t, RateLimitConfig{
				RequestsPerWindow: requestsPerWindow,
				Window:            time.Second,
				KeyPrefix:         "rate_limit_test",
			})

			successCount := 0
			blockedCount := 0
			for i := 0; i < requestsPerWindow+excessRequests; i++ {
				req := httptest.NewRequest(http.MethodGet, "/products", nil)
				req.RemoteAddr = "192.168.1.100"
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)

				switch rec.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			return successCount == requestsPerWindow && blockedCount == excessRequests
		},
		gen.IntRange(5, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitHeadersArePresent(t *testing.T) {
	handler, _ := newRateLimitedHandler(t, RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Second,
		KeyPrefix:         "rate_limit_test",
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = "192.168.1.101"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-RateLimit-Limit") != "10" {
		t.Errorf("unexpected X-RateLimit-Limit: %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "9" {
		t.Errorf("unexpected X-RateLimit-Remaining: %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimitKeysOnTokenSubjectWhenPresent(t *testing.T) {
	handler, mr := newRateLimitedHandler(t, RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Second,
		KeyPrefix:         "rate_limit_test",
	})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.RemoteAddr = "10.0.0.1"
	req = req.WithContext(context.WithValue(req.Context(), SubjectKey, "user-42"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !mr.Exists("rate_limit_test:user-42") {
		t.Error("expected counter keyed by token subject")
	}
	if mr.Exists("rate_limit_test:10.0.0.1") {
		t.Error("counter must not fall back to the client IP when a subject exists")
	}
}

func TestRateLimitAllowsRequestsWhenRedisIsDown(t *testing.T) {
	handler, mr := newRateLimitedHandler(t, RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Second,
		KeyPrefix:         "rate_limit_test",
	})
	mr.Close()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.RemoteAddr = "10.0.0.2"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: sink failure must fail open, got %d", i, rec.Code)
		}
	}
}
